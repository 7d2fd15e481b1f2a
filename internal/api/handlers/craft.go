package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/cloudtail/internal/service"
)

type CraftHandler struct {
	svc *service.CraftingService
}

func NewCraftHandler(svc *service.CraftingService) *CraftHandler {
	return &CraftHandler{svc: svc}
}

type craftRequest struct {
	EmotionType string `json:"emotion_type"`
}

func (h *CraftHandler) Craft(w http.ResponseWriter, r *http.Request) {
	var req craftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := h.svc.Craft(req.EmotionType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmotion) {
			writeError(w, http.StatusBadRequest, "emotion_type is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to craft item")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func (h *CraftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"recipes": h.svc.Preview()})
}
