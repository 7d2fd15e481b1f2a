package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/cloudtail/internal/service"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(svc *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

type recommendRequest struct {
	Content string `json:"content"`
}

func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Recommend(r.Context(), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemoryContentEmpty):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClassifierUnavailable):
			writeError(w, http.StatusServiceUnavailable, service.ErrClassifierUnavailable.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to recommend planet")
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
