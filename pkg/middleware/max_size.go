package middleware

import (
	"net/http"

	apperrors "carrental/pkg/errors"
)

// MaxRequestSize rejects bodies declared larger than limit and caps the rest,
// so handlers see a read error instead of buffering an unbounded body.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				reject(w, http.StatusRequestEntityTooLarge, apperrors.CodeBadRequest, "Request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
