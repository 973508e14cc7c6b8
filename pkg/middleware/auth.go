package middleware

import (
	"net/http"
	"strings"

	"carrental/pkg/auth"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate requires a session token in the Authorization header, either
// bare or with a "Bearer " prefix. A missing token is a 401, a token that
// fails verification is a 400.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromHeader(r.Header.Get("Authorization"))
			if token == "" {
				reject(w, http.StatusUnauthorized, apperrors.CodeUnauthorized, "Access denied")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Rejected session token",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err,
					"path", r.URL.Path,
				)
				reject(w, http.StatusBadRequest, apperrors.CodeInvalidToken, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.ID)))
		})
	}
}

func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
