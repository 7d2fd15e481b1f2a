package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Harshitk-cp/cloudtail/internal/classifier"
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryFixture struct {
	svc        *MemoryService
	store      *mockMemoryStore
	classifier *classifier.MockClassifier
	audit      *mockAuditSink
	logs       *observer.ObservedLogs
}

func newMemoryFixture(t *testing.T) memoryFixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f := memoryFixture{
		store:      newMockMemoryStore(),
		classifier: classifier.NewMockClassifier(),
		audit:      &mockAuditSink{},
		logs:       logs,
	}
	f.svc = NewMemoryService(f.store, f.classifier, newTestEngine(t).Canonicalizer, f.audit, zap.New(core))
	return f
}

func TestMemoryService_Create(t *testing.T) {
	f := newMemoryFixture(t)
	f.classifier.Response = domain.Classification{Label: "grief", Confidence: 0.9}
	userID := uuid.New()

	m, essence, err := f.svc.Create(context.Background(), CreateMemoryInput{
		UserID:   userID,
		Content:  "  the empty chair at dinner  ",
		Keywords: []string{"dinner"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "the empty chair at dinner", m.Content)
	assert.Equal(t, "grief", m.RawLabel)
	assert.Equal(t, domain.EmotionSadness, m.DetectedEmotion)
	assert.Equal(t, 0.9, m.Confidence)
	assert.Equal(t, []string{"the empty chair at dinner"}, f.classifier.Calls)

	assert.Equal(t, domain.EmotionSadness, essence.Type)
	assert.Equal(t, "CrystalShard", essence.Element)
	assert.Equal(t, 1.0, essence.Value)

	require.Len(t, f.audit.emotions, 1)
	ev := f.audit.emotions[0]
	assert.Equal(t, m.ID, ev.MemoryID)
	assert.Equal(t, userID, ev.UserID)
	assert.Equal(t, domain.EmotionSadness, ev.Emotion)
	assert.False(t, ev.Override)
}

func TestMemoryService_CreateEmptyContent(t *testing.T) {
	f := newMemoryFixture(t)

	_, _, err := f.svc.Create(context.Background(), CreateMemoryInput{UserID: uuid.New(), Content: " \n\t"})
	if !errors.Is(err, ErrMemoryContentEmpty) {
		t.Fatalf("expected ErrMemoryContentEmpty, got %v", err)
	}
	if len(f.classifier.Calls) != 0 {
		t.Fatal("classifier should not be called for empty content")
	}
}

func TestMemoryService_CreateClassifierFailureDegrades(t *testing.T) {
	f := newMemoryFixture(t)
	f.classifier.Error = errors.New("model offline")

	m, essence, err := f.svc.Create(context.Background(), CreateMemoryInput{UserID: uuid.New(), Content: "something"})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultEmotion, m.DetectedEmotion)
	assert.Equal(t, 0.0, m.Confidence)
	assert.InDelta(t, 0.2, essence.Value, 1e-9)
	assert.Equal(t, 1, f.logs.FilterMessage("emotion classification failed, using default emotion").Len())
}

func TestMemoryService_CreateUnmappedLabelWarns(t *testing.T) {
	f := newMemoryFixture(t)
	f.classifier.Response = domain.Classification{Label: "surprise", Confidence: 0.6}

	m, _, err := f.svc.Create(context.Background(), CreateMemoryInput{UserID: uuid.New(), Content: "oh!"})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultEmotion, m.DetectedEmotion)
	assert.Equal(t, "surprise", m.RawLabel)
	warn := f.logs.FilterMessage("unmapped emotion label").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "surprise", warn[0].ContextMap()["label"])
}

func TestMemoryService_AuditFailureDoesNotFailCreate(t *testing.T) {
	f := newMemoryFixture(t)
	f.audit.err = errors.New("disk full")

	_, _, err := f.svc.Create(context.Background(), CreateMemoryInput{UserID: uuid.New(), Content: "thank you"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.logs.FilterMessage("failed to record emotion audit").Len())
}

func TestMemoryService_StoreErrorIsReturned(t *testing.T) {
	f := newMemoryFixture(t)
	f.store.err = errors.New("db down")

	_, _, err := f.svc.Create(context.Background(), CreateMemoryInput{UserID: uuid.New(), Content: "x"})
	assert.Error(t, err)
	assert.Empty(t, f.audit.emotions)
}

func TestMemoryService_GetByIDScopedToUser(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	m, _, err := f.svc.Create(ctx, CreateMemoryInput{UserID: owner, Content: "x"})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, m.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	if _, err := f.svc.GetByID(ctx, m.ID, uuid.New()); !errors.Is(err, ErrMemoryNotFound) {
		t.Fatalf("expected ErrMemoryNotFound, got %v", err)
	}
}

func TestMemoryService_List(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	got, err := f.svc.List(ctx, userID, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	for _, c := range []string{"first", "second", "third"} {
		_, _, err := f.svc.Create(ctx, CreateMemoryInput{UserID: userID, Content: c})
		require.NoError(t, err)
	}

	got, err = f.svc.List(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
}

func TestMemoryService_UpdateOverride(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	m, _, err := f.svc.Create(ctx, CreateMemoryInput{UserID: userID, Content: "x"})
	require.NoError(t, err)

	override := "Longing"
	got, err := f.svc.Update(ctx, m.ID, userID, UpdateMemoryInput{ManualOverride: &override})
	require.NoError(t, err)
	require.NotNil(t, got.ManualOverride)
	assert.Equal(t, domain.EmotionNostalgia, *got.ManualOverride)
	assert.Equal(t, "nostalgia", got.HistoryEntry().ManualOverride)

	require.Len(t, f.audit.emotions, 2)
	assert.True(t, f.audit.emotions[1].Override)
	assert.Equal(t, domain.EmotionNostalgia, f.audit.emotions[1].Emotion)
}

func TestMemoryService_UpdateValidation(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	m, _, err := f.svc.Create(ctx, CreateMemoryInput{UserID: userID, Content: "x"})
	require.NoError(t, err)

	if _, err := f.svc.Update(ctx, m.ID, userID, UpdateMemoryInput{}); !errors.Is(err, ErrNoUpdateFields) {
		t.Fatalf("expected ErrNoUpdateFields, got %v", err)
	}

	bad := "bewildered"
	if _, err := f.svc.Update(ctx, m.ID, userID, UpdateMemoryInput{ManualOverride: &bad}); !errors.Is(err, ErrInvalidEmotion) {
		t.Fatalf("expected ErrInvalidEmotion, got %v", err)
	}

	private := true
	if _, err := f.svc.Update(ctx, uuid.New(), userID, UpdateMemoryInput{IsPrivate: &private}); !errors.Is(err, ErrMemoryNotFound) {
		t.Fatalf("expected ErrMemoryNotFound, got %v", err)
	}

	got, err := f.svc.Update(ctx, m.ID, userID, UpdateMemoryInput{IsPrivate: &private})
	require.NoError(t, err)
	assert.True(t, got.IsPrivate)
	assert.Len(t, f.audit.emotions, 1, "privacy changes are not emotion events")
}

func TestMemoryService_Delete(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	m, _, err := f.svc.Create(ctx, CreateMemoryInput{UserID: userID, Content: "x"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, m.ID, userID))
	if err := f.svc.Delete(ctx, m.ID, userID); !errors.Is(err, ErrMemoryNotFound) {
		t.Fatalf("expected ErrMemoryNotFound, got %v", err)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short"))

	long := strings.Repeat("é", excerptLength+10)
	got := excerpt(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, excerptLength+1, len([]rune(got)))
}
