package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmotionPriority(t *testing.T) {
	assert.Equal(t, []Emotion{EmotionGratitude, EmotionGuilt, EmotionNostalgia, EmotionSadness}, Emotions())
	assert.Less(t, EmotionGratitude.Priority(), EmotionSadness.Priority())
	assert.Equal(t, 4, Emotion("boredom").Priority())

	// Mutating the returned slice must not affect later calls.
	e := Emotions()
	e[0] = EmotionSadness
	assert.Equal(t, EmotionGratitude, Emotions()[0])
}

func TestValidEmotionAndState(t *testing.T) {
	tests := []struct {
		in      string
		emotion bool
		state   bool
	}{
		{"sadness", true, true},
		{"gratitude", true, true},
		{"neutral", false, true},
		{"transition", false, true},
		{"Sadness", false, false},
		{"", false, false},
		{"grief", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.emotion, ValidEmotion(tt.in))
			assert.Equal(t, tt.state, ValidStateTag(tt.in))
		})
	}
}

func TestEmotionHistory(t *testing.T) {
	h := EmotionHistory{EmotionSadness, EmotionGratitude, EmotionSadness, EmotionGuilt}

	assert.Equal(t, 2, h.Count(EmotionSadness))
	assert.True(t, h.Contains(EmotionGuilt))
	assert.False(t, h.Contains(EmotionNostalgia))
	assert.Equal(t, 0.5, h.Share(EmotionSadness))
	assert.Equal(t, []string{"sadness", "gratitude", "sadness", "guilt"}, h.Strings())

	var empty EmotionHistory
	assert.Equal(t, 0.0, empty.Share(EmotionSadness))
	assert.Empty(t, empty.Strings())
}

func TestMemoryHistoryEntry(t *testing.T) {
	m := &Memory{DetectedEmotion: EmotionSadness}
	assert.Equal(t, HistoryEntry{Label: "sadness"}, m.HistoryEntry())

	override := EmotionGratitude
	m.ManualOverride = &override
	assert.Equal(t, HistoryEntry{Label: "sadness", ManualOverride: "gratitude"}, m.HistoryEntry())
}

func TestMemoryUpdateEmpty(t *testing.T) {
	assert.True(t, MemoryUpdate{}.Empty())

	private := true
	assert.False(t, MemoryUpdate{IsPrivate: &private}.Empty())
	assert.False(t, MemoryUpdate{Keywords: []string{}}.Empty())
}

func TestAuditRecords(t *testing.T) {
	user := uuid.New()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	r := RitualEvent{
		UserID:      user,
		RitualID:    "ashes_to_light",
		EmotionPath: EmotionHistory{EmotionSadness, EmotionGratitude},
		State:       StateTransition,
		At:          at,
	}.Record()
	assert.Equal(t, AuditRitual, r.Kind)
	assert.Equal(t, "ashes_to_light", r.Subject)
	assert.Equal(t, []string{"sadness", "gratitude"}, r.Payload["emotion_path"])
	assert.Equal(t, at, r.CreatedAt)
	assert.NotEqual(t, uuid.Nil, r.ID)

	memID := uuid.New()
	e := EmotionEvent{UserID: user, MemoryID: memID, Emotion: EmotionGuilt, Override: true}.Record()
	assert.Equal(t, AuditEmotion, e.Kind)
	assert.Equal(t, memID.String(), e.Subject)
	assert.Equal(t, true, e.Payload["override"])

	p := PlanetEvent{UserID: user, Planet: PlanetSpiral, Dominant: EmotionSadness}.Record()
	assert.Equal(t, AuditPlanet, p.Kind)
	assert.Equal(t, "spiral", p.Subject)
}
