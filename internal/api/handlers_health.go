// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DailyInvestors/Network-Repairs/internal/storage"
)

// healthResponse reports liveness plus how many uploads the store holds.
type healthResponse struct {
	Status  string `json:"status" msgpack:"status"`
	Version string `json:"version" msgpack:"version"`
	Files   int    `json:"files" msgpack:"files"`
}

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	store   storage.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, store storage.Store) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		store:   store,
	}
}

// HandleHealth reports "ok" while the store can be listed, "degraded"
// with a 503 otherwise.
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	resp := healthResponse{Status: "ok", Version: h.version}

	files, err := h.store.List(0)
	if err != nil {
		resp.Status = "degraded"
		return respond(c, http.StatusServiceUnavailable, resp)
	}
	resp.Files = len(files)

	return respond(c, http.StatusOK, resp)
}
