package http

import (
	"net/http"

	"github.com/MKhiriev/go-qr-keeper/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(serverVersion))
}

// health reports 503 when the record store cannot be reached.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.HealthService.Check(r.Context()); err != nil {
		_, _ = utils.WriteJSON(w, healthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
