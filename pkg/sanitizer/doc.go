// Package sanitizer normalizes user-supplied contact data before it is
// validated and stored.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. They never fail: input that cannot be normalized is returned
// trimmed, and validation decides whether it is acceptable.
//
// Normalization includes:
//   - Names: Collapse whitespace, trim leading/trailing spaces
//   - Emails: Trim and lowercase
//   - Phone numbers: Convert to E.164 format (+[country][number]) when parseable
//   - Addresses: Collapse whitespace, strip control characters
package sanitizer
