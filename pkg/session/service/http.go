package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/land-registry-session/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// InstalledResponse is the body of GET /wallet/installed
type InstalledResponse struct {
	Installed bool `json:"installed"`
}

// RegisterRoutes registers HTTP endpoints for the session service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/session", apphttp.HandleError(h.snapshot))
	r.Post("/session/connect", apphttp.HandleError(h.connect))
	r.Post("/session/disconnect", apphttp.HandleError(h.disconnect))
	r.Get("/wallet/installed", apphttp.HandleError(h.installed))
}

func (h *HTTP) snapshot(w http.ResponseWriter, r *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, h.service.Snapshot(r.Context()))
	return nil
}

func (h *HTTP) connect(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.Connect(r.Context())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) disconnect(w http.ResponseWriter, r *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, h.service.Disconnect(r.Context()))
	return nil
}

func (h *HTTP) installed(w http.ResponseWriter, r *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, &InstalledResponse{Installed: h.service.IsWalletInstalled(r.Context())})
	return nil
}
