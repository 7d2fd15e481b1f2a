package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditKind string

const (
	AuditEmotion AuditKind = "emotion"
	AuditPlanet  AuditKind = "planet"
	AuditRitual  AuditKind = "ritual"
)

// EmotionEvent records an emotion assignment or a manual override.
type EmotionEvent struct {
	UserID   uuid.UUID
	MemoryID uuid.UUID
	Emotion  Emotion
	Score    float64
	Element  string
	Override bool
	Excerpt  string
	At       time.Time
}

// PlanetEvent records a computed planet status.
type PlanetEvent struct {
	UserID   uuid.UUID
	Planet   PlanetKey
	Dominant Emotion
	Palette  []string
	Theme    string
	At       time.Time
}

// RitualEvent records a ritual selection.
type RitualEvent struct {
	UserID       uuid.UUID
	RitualID     string
	EmotionPath  EmotionHistory
	State        StateTag
	UserOverride bool
	At           time.Time
}

// AuditRecord is the stored, backend-neutral form of any audit event.
type AuditRecord struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Kind      AuditKind      `json:"kind"`
	Subject   string         `json:"subject"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// Record converts the event to its stored form.
func (e EmotionEvent) Record() AuditRecord {
	return AuditRecord{
		ID:      uuid.New(),
		UserID:  e.UserID,
		Kind:    AuditEmotion,
		Subject: e.MemoryID.String(),
		Payload: map[string]any{
			"emotion":  string(e.Emotion),
			"score":    e.Score,
			"element":  e.Element,
			"override": e.Override,
			"excerpt":  e.Excerpt,
		},
		CreatedAt: e.At,
	}
}

func (e PlanetEvent) Record() AuditRecord {
	return AuditRecord{
		ID:      uuid.New(),
		UserID:  e.UserID,
		Kind:    AuditPlanet,
		Subject: string(e.Planet),
		Payload: map[string]any{
			"dominant": string(e.Dominant),
			"palette":  e.Palette,
			"theme":    e.Theme,
		},
		CreatedAt: e.At,
	}
}

func (e RitualEvent) Record() AuditRecord {
	return AuditRecord{
		ID:      uuid.New(),
		UserID:  e.UserID,
		Kind:    AuditRitual,
		Subject: e.RitualID,
		Payload: map[string]any{
			"emotion_path":  e.EmotionPath.Strings(),
			"state":         string(e.State),
			"user_override": e.UserOverride,
		},
		CreatedAt: e.At,
	}
}
