package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "carrental/pkg/errors"
)

// DecodeJSON reads a single JSON document from the request body into v.
// Unknown fields are accepted.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.InvalidInput("Request body too large")
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
