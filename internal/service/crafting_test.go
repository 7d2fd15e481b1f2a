package service

import (
	"errors"
	"testing"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCraftingService_Craft(t *testing.T) {
	svc := NewCraftingService(newTestEngine(t).Canonicalizer)

	r, err := svc.Craft("Regret")
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionGuilt, r.Emotion)
	assert.Equal(t, "Mirror of Regret", r.ItemName)

	r, err = svc.Craft("bewildered")
	require.NoError(t, err)
	assert.Equal(t, "Sun Thread Locket", r.ItemName)

	if _, err := svc.Craft(" "); !errors.Is(err, ErrInvalidEmotion) {
		t.Fatalf("expected ErrInvalidEmotion, got %v", err)
	}
}

func TestCraftingService_Preview(t *testing.T) {
	svc := NewCraftingService(newTestEngine(t).Canonicalizer)

	got := svc.Preview()
	require.Len(t, got, 4)
	var order []domain.Emotion
	for _, r := range got {
		order = append(order, r.Emotion)
	}
	assert.Equal(t, domain.Emotions(), order)
}
