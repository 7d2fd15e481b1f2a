package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/cloudtail/internal/api/middleware"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/Harshitk-cp/cloudtail/internal/service"
)

type PlanetHandler struct {
	svc *service.PlanetService
}

func NewPlanetHandler(svc *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{svc: svc}
}

func (h *PlanetHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	status, err := h.svc.Status(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute planet status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *PlanetHandler) Preview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Preview())
}

// List returns every planet in client order.
func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"planets": engine.Planets()})
}
