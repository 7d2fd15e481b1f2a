package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/api/middleware"
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/service"
	"github.com/go-chi/chi/v5"
)

type RitualHandler struct {
	svc *service.RitualService
}

func NewRitualHandler(svc *service.RitualService) *RitualHandler {
	return &RitualHandler{svc: svc}
}

type ritualListResponse struct {
	Rituals []domain.RitualTemplate `json:"rituals"`
	Count   int                     `json:"count"`
}

func (h *RitualHandler) List(w http.ResponseWriter, r *http.Request) {
	rituals := h.svc.List()
	writeJSON(w, http.StatusOK, ritualListResponse{Rituals: rituals, Count: len(rituals)})
}

func (h *RitualHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeRitualError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Perform selects a ritual from the caller's recent public memories.
func (h *RitualHandler) Perform(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	override, err := queryBool(r, "user_override")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_override")
		return
	}

	q := r.URL.Query()
	res, err := h.svc.Perform(r.Context(), user.ID, service.PerformInput{
		Category:     q.Get("ritual_type"),
		PreferredID:  q.Get("preferred_ritual"),
		State:        q.Get("state"),
		UserOverride: override,
	})
	if err != nil {
		writeRitualError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Recommend ranks rituals for an explicit emotion path. emotion_path may be
// repeated or comma separated.
func (h *RitualHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	override, err := queryBool(r, "user_override")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_override")
		return
	}

	q := r.URL.Query()
	ranked, err := h.svc.Recommend(service.RecommendInput{
		EmotionPath:  splitPath(q["emotion_path"]),
		PlanetState:  q.Get("planet_state"),
		Category:     q.Get("ritual_type"),
		UserOverride: override,
	})
	if err != nil {
		writeRitualError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ritualListResponse{Rituals: ranked, Count: len(ranked)})
}

func splitPath(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeRitualError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRitualNotFound),
		errors.Is(err, service.ErrNoRitualFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrEmotionPathMissing):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to select ritual")
	}
}
