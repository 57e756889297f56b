package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-shop-edge/internal/logger"
)

// withRecover turns a panicking handler into an internal error response.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(p)
			}

			logger.FromRequest(r).Error().
				Str("panic", fmt.Sprint(p)).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			h.respondError(w, r, fmt.Errorf("%w: %v", ErrPanicRecovered, p))
		}()

		next.ServeHTTP(w, r)
	})
}
