package service

import (
	"context"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ritualHistoryLimit bounds the snapshot read before windowing.
const ritualHistoryLimit = 100

type RitualService struct {
	memoryStore domain.MemoryStore
	canon       *engine.Canonicalizer
	aggregator  *engine.Aggregator
	selector    *engine.Selector
	audit       auditor
	logger      *zap.Logger
}

// NewRitualService builds the service. agg should carry the ritual window.
func NewRitualService(ms domain.MemoryStore, eng *engine.Engine, agg *engine.Aggregator, sink domain.AuditSink, logger *zap.Logger) *RitualService {
	if agg == nil {
		agg = eng.Aggregator
	}
	return &RitualService{
		memoryStore: ms,
		canon:       eng.Canonicalizer,
		aggregator:  agg,
		selector:    eng.Selector,
		audit:       newAuditor(sink, logger),
		logger:      logger,
	}
}

func (s *RitualService) List() []domain.RitualTemplate {
	return s.selector.Catalog()
}

func (s *RitualService) Get(id string) (*domain.RitualTemplate, error) {
	t, ok := s.selector.Get(id)
	if !ok {
		return nil, ErrRitualNotFound
	}
	return &t, nil
}

type PerformInput struct {
	Category    string
	PreferredID string
	// State replaces the aggregated state tag when set.
	State        string
	UserOverride bool
}

type PerformResult struct {
	Ritual domain.RitualTemplate `json:"ritual"`
	State  domain.SymbolicState  `json:"state"`
	// CurrentState is the state the ritual was matched against.
	CurrentState domain.StateTag `json:"current_state"`
}

// Perform selects a ritual for the user's most recent public memories.
func (s *RitualService) Perform(ctx context.Context, userID uuid.UUID, in PerformInput) (*PerformResult, error) {
	if in.Category != "" && !domain.ValidRitualCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	if in.State != "" && !domain.ValidStateTag(in.State) {
		return nil, ErrInvalidState
	}

	memories, err := s.memoryStore.History(ctx, userID, domain.HistoryOpts{Limit: ritualHistoryLimit})
	if err != nil {
		return nil, err
	}
	state := s.aggregator.Aggregate(historyEntries(memories))

	current := state.StateTag
	if in.State != "" {
		current = domain.StateTag(in.State)
	}

	req := domain.SelectionRequest{
		History:      state.History,
		CurrentState: current,
		Category:     domain.RitualCategory(in.Category),
		PreferredID:  in.PreferredID,
		UserOverride: in.UserOverride,
	}
	ritual, ok := s.selector.Select(req)
	if !ok {
		s.logger.Info("no ritual matched",
			zap.String("user_id", userID.String()),
			zap.String("state", string(current)),
			zap.Bool("ready", engine.Ready(state.History)),
		)
		return nil, ErrNoRitualFound
	}

	s.audit.ritual(ctx, domain.RitualEvent{
		UserID:       userID,
		RitualID:     ritual.ID,
		EmotionPath:  state.History,
		State:        current,
		UserOverride: in.UserOverride,
		At:           time.Now(),
	})
	return &PerformResult{Ritual: ritual, State: state, CurrentState: current}, nil
}

type RecommendInput struct {
	EmotionPath  []string
	PlanetState  string
	Category     string
	UserOverride bool
}

// Recommend ranks every ritual matching an explicit emotion path and state.
// Raw labels in the path are canonicalized first.
func (s *RitualService) Recommend(in RecommendInput) ([]domain.RitualTemplate, error) {
	if len(in.EmotionPath) == 0 {
		return nil, ErrEmotionPathMissing
	}
	if !domain.ValidStateTag(in.PlanetState) {
		return nil, ErrInvalidState
	}
	if in.Category != "" && !domain.ValidRitualCategory(in.Category) {
		return nil, ErrInvalidCategory
	}

	ranked := s.selector.Rank(domain.SelectionRequest{
		History:      s.canon.CanonicalizeAll(in.EmotionPath),
		CurrentState: domain.StateTag(in.PlanetState),
		Category:     domain.RitualCategory(in.Category),
		UserOverride: in.UserOverride,
	})
	if len(ranked) == 0 {
		return nil, ErrNoRitualFound
	}
	return ranked, nil
}
