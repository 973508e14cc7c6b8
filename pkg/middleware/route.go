package middleware

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Route applies mws to a single httprouter handle. Register the result with
// router.Handler; path params stay available through the request context.
func Route(h httprouter.Handle, mws ...func(http.Handler) http.Handler) http.Handler {
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r, httprouter.ParamsFromContext(r.Context()))
	})
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			next = mws[i](next)
		}
	}
	return next
}
