package domain

import (
	"time"

	"github.com/google/uuid"
)

// Memory is a user-submitted free-text entry and the emotion detected for it.
type Memory struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id,omitempty"`
	Content string    `json:"content"`
	// RawLabel is the classifier output before canonicalization.
	RawLabel        string  `json:"raw_label,omitempty"`
	DetectedEmotion Emotion `json:"detected_emotion"`
	Confidence      float64 `json:"confidence"`
	// ManualOverride is a user correction; it always wins over DetectedEmotion.
	ManualOverride *Emotion  `json:"manual_override,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	IsPrivate      bool      `json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HistoryEntry returns the memory as an aggregation input.
func (m *Memory) HistoryEntry() HistoryEntry {
	e := HistoryEntry{Label: string(m.DetectedEmotion)}
	if m.ManualOverride != nil {
		e.ManualOverride = string(*m.ManualOverride)
	}
	return e
}

// HistoryEntry is one element of a raw history snapshot.
type HistoryEntry struct {
	Label          string `json:"label"`
	ManualOverride string `json:"manual_override,omitempty"`
}

// MemoryUpdate holds the mutable fields of a memory. Nil fields are left unchanged.
type MemoryUpdate struct {
	ManualOverride *Emotion
	IsPrivate      *bool
	Keywords       []string
}

// Empty reports whether the update carries no fields.
func (u MemoryUpdate) Empty() bool {
	return u.ManualOverride == nil && u.IsPrivate == nil && u.Keywords == nil
}
