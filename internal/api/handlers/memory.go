package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/cloudtail/internal/api/middleware"
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MemoryHandler struct {
	svc *service.MemoryService
}

func NewMemoryHandler(svc *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

type createMemoryRequest struct {
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords,omitempty"`
	IsPrivate bool     `json:"is_private,omitempty"`
}

type createMemoryResponse struct {
	*domain.Memory
	Essence domain.Essence `json:"essence"`
}

type updateMemoryRequest struct {
	ManualOverride *string  `json:"manual_override,omitempty"`
	IsPrivate      *bool    `json:"is_private,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

type listMemoriesResponse struct {
	Memories []domain.Memory `json:"memories"`
	Count    int             `json:"count"`
}

func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createMemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, essence, err := h.svc.Create(r.Context(), service.CreateMemoryInput{
		UserID:    user.ID,
		Content:   req.Content,
		Keywords:  req.Keywords,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemoryContentEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create memory")
		return
	}

	writeJSON(w, http.StatusCreated, createMemoryResponse{Memory: m, Essence: essence})
}

func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	memories, err := h.svc.List(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list memories")
		return
	}

	writeJSON(w, http.StatusOK, listMemoriesResponse{Memories: memories, Count: len(memories)})
}

func (h *MemoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid memory id")
		return
	}

	m, err := h.svc.GetByID(r.Context(), id, user.ID)
	if err != nil {
		writeMemoryError(w, err, "failed to get memory")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid memory id")
		return
	}

	var req updateMemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.svc.Update(r.Context(), id, user.ID, service.UpdateMemoryInput{
		ManualOverride: req.ManualOverride,
		IsPrivate:      req.IsPrivate,
		Keywords:       req.Keywords,
	})
	if err != nil {
		writeMemoryError(w, err, "failed to update memory")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid memory id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, user.ID); err != nil {
		writeMemoryError(w, err, "failed to delete memory")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeMemoryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMemoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoUpdateFields),
		errors.Is(err, service.ErrInvalidEmotion):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
