package service

import (
	"context"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultLookback = 24 * time.Hour
	// planetHistoryLimit bounds the snapshot read before windowing.
	planetHistoryLimit = 200
)

type PlanetService struct {
	memoryStore domain.MemoryStore
	aggregator  *engine.Aggregator
	lookback    time.Duration
	audit       auditor
	logger      *zap.Logger
	now         func() time.Time
}

func NewPlanetService(ms domain.MemoryStore, agg *engine.Aggregator, lookback time.Duration, sink domain.AuditSink, logger *zap.Logger) *PlanetService {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &PlanetService{
		memoryStore: ms,
		aggregator:  agg,
		lookback:    lookback,
		audit:       newAuditor(sink, logger),
		logger:      logger,
		now:         time.Now,
	}
}

// Status aggregates the user's recent public memories into a planet status.
func (s *PlanetService) Status(ctx context.Context, userID uuid.UUID) (*domain.PlanetStatus, error) {
	now := s.now()
	memories, err := s.memoryStore.History(ctx, userID, domain.HistoryOpts{
		Since: now.Add(-s.lookback),
		Limit: planetHistoryLimit,
	})
	if err != nil {
		return nil, err
	}

	state := s.aggregator.Aggregate(historyEntries(memories))
	status := &domain.PlanetStatus{
		SymbolicState: state,
		Planet:        engine.PlanetFor(state.Dominant),
		LastUpdated:   now.UTC(),
	}

	s.audit.planet(ctx, domain.PlanetEvent{
		UserID:   userID,
		Planet:   status.Planet.Key,
		Dominant: state.Dominant,
		Palette:  state.Palette,
		Theme:    state.Theme,
		At:       now,
	})
	s.logger.Debug("planet status computed",
		zap.String("user_id", userID.String()),
		zap.String("state", string(state.StateTag)),
		zap.Int("history", len(state.History)),
	)
	return status, nil
}

// Preview returns the neutral planet status without reading any history.
func (s *PlanetService) Preview() domain.PlanetStatus {
	state := engine.NeutralState()
	return domain.PlanetStatus{
		SymbolicState: state,
		Planet:        engine.PlanetFor(state.Dominant),
		LastUpdated:   s.now().UTC(),
	}
}

func historyEntries(memories []domain.Memory) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, len(memories))
	for i := range memories {
		entries[i] = memories[i].HistoryEntry()
	}
	return entries
}
