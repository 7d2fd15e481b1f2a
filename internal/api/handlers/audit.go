package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/cloudtail/internal/api/middleware"
	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditHandler exposes the caller's audit trail when the configured
// backend can be read back.
type AuditHandler struct {
	reader domain.AuditReader
}

func NewAuditHandler(reader domain.AuditReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

type auditListResponse struct {
	Events []domain.AuditRecord `json:"events"`
	Count  int                  `json:"count"`
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if h.reader == nil {
		writeError(w, http.StatusNotImplemented, "audit backend is not readable")
		return
	}

	kind := domain.AuditKind(r.URL.Query().Get("kind"))
	switch kind {
	case "", domain.AuditEmotion, domain.AuditPlanet, domain.AuditRitual:
	default:
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	limit, err := queryInt(r, "limit", defaultAuditLimit)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	events, err := h.reader.List(r.Context(), user.ID, kind, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit events")
		return
	}
	if events == nil {
		events = []domain.AuditRecord{}
	}

	writeJSON(w, http.StatusOK, auditListResponse{Events: events, Count: len(events)})
}
