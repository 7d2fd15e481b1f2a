package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*User, error)
}

// HistoryOpts narrows a history snapshot. Private memories are never included.
type HistoryOpts struct {
	Since time.Time
	Limit int
}

type MemoryStore interface {
	Create(ctx context.Context, m *Memory) error
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Memory, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]Memory, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, u MemoryUpdate) (*Memory, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	// History returns non-private memories, most recent first.
	History(ctx context.Context, userID uuid.UUID, opts HistoryOpts) ([]Memory, error)
}

// EmotionClassifier turns free text into a raw emotion label and confidence.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// AuditSink receives the pipeline's outputs for traceability.
type AuditSink interface {
	RecordEmotion(ctx context.Context, e EmotionEvent) error
	RecordPlanet(ctx context.Context, e PlanetEvent) error
	RecordRitual(ctx context.Context, e RitualEvent) error
}

// AuditReader lists stored audit records. An empty kind matches every kind.
type AuditReader interface {
	List(ctx context.Context, userID uuid.UUID, kind AuditKind, limit int) ([]AuditRecord, error)
}
