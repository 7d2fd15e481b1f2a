package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRitualFixture(t *testing.T) (*RitualService, *mockMemoryStore, *mockAuditSink) {
	t.Helper()
	eng := newTestEngine(t)
	agg, err := eng.Aggregator.WithWindow(5)
	require.NoError(t, err)

	ms := newMockMemoryStore()
	sink := &mockAuditSink{}
	return NewRitualService(ms, eng, agg, sink, zap.NewNop()), ms, sink
}

func addHistory(t *testing.T, ms *mockMemoryStore, userID uuid.UUID, emotions ...domain.Emotion) {
	t.Helper()
	// emotions are given most recent first
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, e := range emotions {
		ms.add(t, userID, e, base.Add(-time.Duration(i)*time.Minute))
	}
}

func TestRitualService_ListAndGet(t *testing.T) {
	svc, _, _ := newRitualFixture(t)

	assert.Len(t, svc.List(), 11)

	r, err := svc.Get("echo_lantern")
	require.NoError(t, err)
	assert.Equal(t, domain.RitualHonor, r.Category)

	if _, err := svc.Get("nope"); !errors.Is(err, ErrRitualNotFound) {
		t.Fatalf("expected ErrRitualNotFound, got %v", err)
	}
}

func TestRitualService_Perform(t *testing.T) {
	svc, ms, sink := newRitualFixture(t)
	userID := uuid.New()
	addHistory(t, ms, userID, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionNostalgia)

	got, err := svc.Perform(context.Background(), userID, PerformInput{})
	require.NoError(t, err)

	assert.Equal(t, "candle_for_the_empty_room", got.Ritual.ID)
	assert.Equal(t, domain.StateTag("sadness"), got.CurrentState)

	require.Len(t, sink.rituals, 1)
	assert.Equal(t, "candle_for_the_empty_room", sink.rituals[0].RitualID)
	assert.Equal(t, domain.StateTag("sadness"), sink.rituals[0].State)
}

func TestRitualService_PerformUsesRitualWindow(t *testing.T) {
	svc, ms, _ := newRitualFixture(t)
	userID := uuid.New()
	// Five recent guilt entries outweigh older sadness beyond the window.
	addHistory(t, ms, userID,
		domain.EmotionGuilt, domain.EmotionGuilt, domain.EmotionGuilt, domain.EmotionGuilt, domain.EmotionGuilt,
		domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness,
	)

	got, err := svc.Perform(context.Background(), userID, PerformInput{})
	require.NoError(t, err)
	assert.Len(t, got.State.History, 5)
	assert.Equal(t, "mirror_of_regret", got.Ritual.ID)
}

func TestRitualService_PerformTransitionGuard(t *testing.T) {
	svc, ms, sink := newRitualFixture(t)
	userID := uuid.New()
	addHistory(t, ms, userID,
		domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionSadness, domain.EmotionGratitude,
	)

	_, err := svc.Perform(context.Background(), userID, PerformInput{State: "transition"})
	if !errors.Is(err, ErrNoRitualFound) {
		t.Fatalf("expected ErrNoRitualFound, got %v", err)
	}
	assert.Empty(t, sink.rituals)

	got, err := svc.Perform(context.Background(), userID, PerformInput{State: "transition", UserOverride: true})
	require.NoError(t, err)
	assert.Equal(t, "ashes_to_light", got.Ritual.ID)
	assert.True(t, sink.rituals[0].UserOverride)
}

func TestRitualService_PerformPreferred(t *testing.T) {
	svc, ms, _ := newRitualFixture(t)
	userID := uuid.New()
	addHistory(t, ms, userID, domain.EmotionGuilt)

	got, err := svc.Perform(context.Background(), userID, PerformInput{PreferredID: "sun_thread_blessing"})
	require.NoError(t, err)
	assert.Equal(t, "sun_thread_blessing", got.Ritual.ID)
}

func TestRitualService_PerformEmptyHistory(t *testing.T) {
	svc, _, _ := newRitualFixture(t)

	got, err := svc.Perform(context.Background(), uuid.New(), PerformInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.StateNeutral, got.CurrentState)
	assert.Equal(t, "quiet_star", got.Ritual.ID)
}

func TestRitualService_PerformValidation(t *testing.T) {
	svc, _, _ := newRitualFixture(t)
	ctx := context.Background()

	if _, err := svc.Perform(ctx, uuid.New(), PerformInput{Category: "burn"}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := svc.Perform(ctx, uuid.New(), PerformInput{State: "rebirth"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestRitualService_Recommend(t *testing.T) {
	svc, _, _ := newRitualFixture(t)

	got, err := svc.Recommend(RecommendInput{
		EmotionPath: []string{"grief", "longing"},
		PlanetState: "sadness",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "candle_for_the_empty_room", got[0].ID)
	assert.Equal(t, "rain_echo_release", got[1].ID)

	got, err = svc.Recommend(RecommendInput{
		EmotionPath: []string{"grief", "longing"},
		PlanetState: "sadness",
		Category:    "release",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rain_echo_release", got[0].ID)
}

func TestRitualService_RecommendErrors(t *testing.T) {
	svc, _, _ := newRitualFixture(t)

	tests := []struct {
		name string
		in   RecommendInput
		want error
	}{
		{"missing path", RecommendInput{PlanetState: "sadness"}, ErrEmotionPathMissing},
		{"bad state", RecommendInput{EmotionPath: []string{"grief"}, PlanetState: "rebirth"}, ErrInvalidState},
		{"missing state", RecommendInput{EmotionPath: []string{"grief"}}, ErrInvalidState},
		{"bad category", RecommendInput{EmotionPath: []string{"grief"}, PlanetState: "sadness", Category: "x"}, ErrInvalidCategory},
		{"guarded", RecommendInput{EmotionPath: []string{"grief", "joy"}, PlanetState: "transition"}, ErrNoRitualFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Recommend(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
