package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/Harshitk-cp/cloudtail/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	excerptLength    = 80
)

type MemoryService struct {
	memoryStore domain.MemoryStore
	classifier  domain.EmotionClassifier
	canon       *engine.Canonicalizer
	audit       auditor
	logger      *zap.Logger
}

func NewMemoryService(ms domain.MemoryStore, ec domain.EmotionClassifier, canon *engine.Canonicalizer, sink domain.AuditSink, logger *zap.Logger) *MemoryService {
	return &MemoryService{
		memoryStore: ms,
		classifier:  ec,
		canon:       canon,
		audit:       newAuditor(sink, logger),
		logger:      logger,
	}
}

type CreateMemoryInput struct {
	UserID    uuid.UUID
	Content   string
	Keywords  []string
	IsPrivate bool
}

// Create classifies and stores a memory. A failing classifier does not fail
// the request: the memory is stored with the default emotion and zero confidence.
func (s *MemoryService) Create(ctx context.Context, in CreateMemoryInput) (*domain.Memory, domain.Essence, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.Essence{}, ErrMemoryContentEmpty
	}

	cls := s.classify(ctx, content)
	emotion := s.resolve(cls.Label)

	m := &domain.Memory{
		UserID:          in.UserID,
		Content:         content,
		RawLabel:        cls.Label,
		DetectedEmotion: emotion,
		Confidence:      cls.Confidence,
		Keywords:        in.Keywords,
		IsPrivate:       in.IsPrivate,
	}
	if err := s.memoryStore.Create(ctx, m); err != nil {
		return nil, domain.Essence{}, err
	}

	essence := engine.EssenceFor(emotion, content, cls.Confidence)
	s.audit.emotion(ctx, domain.EmotionEvent{
		UserID:   m.UserID,
		MemoryID: m.ID,
		Emotion:  emotion,
		Score:    essence.Value,
		Element:  essence.Element,
		Excerpt:  excerpt(content),
		At:       time.Now(),
	})

	s.logger.Debug("memory created",
		zap.String("memory_id", m.ID.String()),
		zap.String("raw_label", cls.Label),
		zap.String("emotion", string(emotion)),
		zap.Float64("confidence", cls.Confidence),
	)
	return m, essence, nil
}

func (s *MemoryService) classify(ctx context.Context, content string) domain.Classification {
	if s.classifier == nil {
		return domain.Classification{Label: string(domain.DefaultEmotion)}
	}
	cls, err := s.classifier.Classify(ctx, content)
	if err != nil {
		s.logger.Warn("emotion classification failed, using default emotion",
			zap.String("default", string(domain.DefaultEmotion)),
			zap.Error(err),
		)
		return domain.Classification{Label: string(domain.DefaultEmotion)}
	}
	return cls
}

func (s *MemoryService) resolve(label string) domain.Emotion {
	emotion, ok := s.canon.Resolve(label)
	if !ok {
		s.logger.Warn("unmapped emotion label",
			zap.String("label", label),
			zap.String("resolved", string(emotion)),
		)
	}
	return emotion
}

func (s *MemoryService) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Memory, error) {
	m, err := s.memoryStore.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemoryNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns a user's memories, most recent first. Limits outside
// [1, MaxListLimit] are clamped.
func (s *MemoryService) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Memory, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	memories, err := s.memoryStore.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if memories == nil {
		memories = []domain.Memory{}
	}
	return memories, nil
}

type UpdateMemoryInput struct {
	ManualOverride *string
	IsPrivate      *bool
	Keywords       []string
}

// Update applies a user correction. A manual override must name a known
// emotion or alias and is stored in canonical form.
func (s *MemoryService) Update(ctx context.Context, id, userID uuid.UUID, in UpdateMemoryInput) (*domain.Memory, error) {
	u := domain.MemoryUpdate{IsPrivate: in.IsPrivate, Keywords: in.Keywords}
	if in.ManualOverride != nil {
		e, ok := s.canon.Resolve(*in.ManualOverride)
		if !ok {
			return nil, ErrInvalidEmotion
		}
		u.ManualOverride = &e
	}
	if u.Empty() {
		return nil, ErrNoUpdateFields
	}

	m, err := s.memoryStore.Update(ctx, id, userID, u)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemoryNotFound
		}
		return nil, err
	}

	if u.ManualOverride != nil {
		s.audit.emotion(ctx, domain.EmotionEvent{
			UserID:   userID,
			MemoryID: m.ID,
			Emotion:  *u.ManualOverride,
			Score:    m.Confidence,
			Element:  engine.ElementFor(*u.ManualOverride),
			Override: true,
			Excerpt:  excerpt(m.Content),
			At:       time.Now(),
		})
	}
	return m, nil
}

func (s *MemoryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.memoryStore.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemoryNotFound
		}
		return err
	}
	return nil
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLength {
		return s
	}
	return string([]rune(s)[:excerptLength]) + "…"
}
