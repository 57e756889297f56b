package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/utils"
)

const (
	requestTimeoutBody  = "request took too long"
	tooManyRequestsBody = "too many requests"
	internalErrorPrefix = "Unhandled internal error: "
)

var errorStatusMap = map[error]int{
	ErrRequestTimeout:        http.StatusRequestTimeout,
	context.DeadlineExceeded: http.StatusRequestTimeout,
	ErrTooManyRequests:       http.StatusTooManyRequests,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func errorBody(status int, err error) string {
	switch status {
	case http.StatusRequestTimeout:
		return requestTimeoutBody
	case http.StatusTooManyRequests:
		return tooManyRequestsBody
	default:
		return fmt.Sprintf("%s%v", internalErrorPrefix, err)
	}
}

// respondError is the single place where errors surfacing from handlers and
// middleware become HTTP responses. Every error maps to a status and body.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status == http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Msg("request failed")

	if _, writeErr := utils.WriteText(w, errorBody(status, err), status); writeErr != nil {
		log.Warn().Err(writeErr).Msg("error writing error response")
	}
}
