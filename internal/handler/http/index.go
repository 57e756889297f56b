package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/utils"
)

const indexBody = "index"

// index is the placeholder bound to every declared route.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) error {
	if _, err := utils.WriteText(w, indexBody, http.StatusOK); err != nil {
		// the status line is already out, nothing left to normalize
		logger.FromRequest(r).Warn().Err(err).Msg("error writing response body")
	}

	return nil
}
