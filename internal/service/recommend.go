package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"go.uber.org/zap"
)

type RecommendService struct {
	classifier domain.EmotionClassifier
	canon      *engine.Canonicalizer
	logger     *zap.Logger
}

func NewRecommendService(ec domain.EmotionClassifier, canon *engine.Canonicalizer, logger *zap.Logger) *RecommendService {
	return &RecommendService{classifier: ec, canon: canon, logger: logger}
}

// PlanetRecommendation is the planet a piece of text points to.
type PlanetRecommendation struct {
	PlanetIndex int              `json:"planet_index"`
	PlanetKey   domain.PlanetKey `json:"planet_key"`
	DisplayName string           `json:"display_name"`
	Emotion     domain.Emotion   `json:"emotion"`
	Confidence  float64          `json:"confidence"`
	Reason      string           `json:"reason"`
	Essence     domain.Essence   `json:"essence"`
}

// Recommend classifies text and maps it to a planet. Unlike memory creation,
// a classifier failure is returned as ErrClassifierUnavailable.
func (s *RecommendService) Recommend(ctx context.Context, content string) (*PlanetRecommendation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMemoryContentEmpty
	}
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}

	cls, err := s.classifier.Classify(ctx, content)
	if err != nil {
		s.logger.Warn("emotion classification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	emotion, ok := s.canon.Resolve(cls.Label)
	if !ok {
		s.logger.Warn("unmapped emotion label",
			zap.String("label", cls.Label),
			zap.String("resolved", string(emotion)),
		)
	}
	planet := engine.PlanetFor(emotion)

	return &PlanetRecommendation{
		PlanetIndex: planet.Index,
		PlanetKey:   planet.Key,
		DisplayName: planet.DisplayName,
		Emotion:     emotion,
		Confidence:  math.Round(cls.Confidence*1000) / 1000,
		Reason:      fmt.Sprintf("%s -> %s", cls.Label, planet.Key),
		Essence:     engine.EssenceFor(emotion, content, cls.Confidence),
	}, nil
}
