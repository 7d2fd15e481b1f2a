package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestSink(t *testing.T) *SQLiteSink {
	t.Helper()
	s, err := NewSQLiteSink(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSink_RecordAndList(t *testing.T) {
	s := newTestSink(t)
	ctx := context.Background()
	user := uuid.New()
	other := uuid.New()
	memID := uuid.New()
	now := time.Now()

	require.NoError(t, s.RecordEmotion(ctx, domain.EmotionEvent{
		UserID: user, MemoryID: memID, Emotion: domain.EmotionGuilt, Score: 0.7, Element: "RustIngot", At: now,
	}))
	require.NoError(t, s.RecordPlanet(ctx, domain.PlanetEvent{
		UserID: user, Planet: domain.PlanetRippled, Dominant: domain.EmotionGuilt,
		Palette: []string{"#B00020", "#FF8A80"}, Theme: "storm", At: now.Add(time.Second),
	}))
	require.NoError(t, s.RecordRitual(ctx, domain.RitualEvent{
		UserID: user, RitualID: "mirror_of_regret", State: "guilt",
		EmotionPath: domain.EmotionHistory{domain.EmotionGuilt}, At: now.Add(2 * time.Second),
	}))
	require.NoError(t, s.RecordRitual(ctx, domain.RitualEvent{UserID: other, RitualID: "quiet_star", At: now}))

	all, err := s.List(ctx, user, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.AuditRitual, all[0].Kind)
	assert.Equal(t, "mirror_of_regret", all[0].Subject)
	assert.Equal(t, domain.AuditEmotion, all[2].Kind)
	assert.Equal(t, memID.String(), all[2].Subject)
	assert.Equal(t, "guilt", all[2].Payload["emotion"])
	assert.Equal(t, 0.7, all[2].Payload["score"])

	planets, err := s.List(ctx, user, domain.AuditPlanet, 10)
	require.NoError(t, err)
	require.Len(t, planets, 1)
	assert.Equal(t, "rippled", planets[0].Subject)
	assert.Equal(t, []any{"#B00020", "#FF8A80"}, planets[0].Payload["palette"])
	assert.Equal(t, user, planets[0].UserID)
}

func TestSQLiteSink_ListEmpty(t *testing.T) {
	s := newTestSink(t)
	got, err := s.List(context.Background(), uuid.New(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteSink_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	user := uuid.New()

	s, err := NewSQLiteSink(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordRitual(context.Background(), domain.RitualEvent{UserID: user, RitualID: "echo_lantern"}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteSink(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.List(context.Background(), user, domain.AuditRitual, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "echo_lantern", got[0].Subject)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogSink(zap.New(core))
	ctx := context.Background()

	require.NoError(t, s.RecordEmotion(ctx, domain.EmotionEvent{Emotion: domain.EmotionSadness}))
	require.NoError(t, s.RecordPlanet(ctx, domain.PlanetEvent{Planet: domain.PlanetSpiral}))
	require.NoError(t, s.RecordRitual(ctx, domain.RitualEvent{RitualID: "rain_echo_release"}))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "emotion assigned", entries[0].Message)
	assert.Equal(t, "sadness", entries[0].ContextMap()["emotion"])
	assert.Equal(t, "spiral", entries[1].ContextMap()["planet"])
	assert.Equal(t, "rain_echo_release", entries[2].ContextMap()["ritual_id"])
	assert.Equal(t, "audit", entries[2].LoggerName)
}
