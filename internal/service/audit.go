package service

import (
	"context"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"go.uber.org/zap"
)

// auditor forwards events to an AuditSink. Sink failures are logged and
// never returned to the caller.
type auditor struct {
	sink   domain.AuditSink
	logger *zap.Logger
}

func newAuditor(sink domain.AuditSink, logger *zap.Logger) auditor {
	return auditor{sink: sink, logger: logger}
}

func (a auditor) emotion(ctx context.Context, e domain.EmotionEvent) {
	if a.sink == nil {
		return
	}
	if err := a.sink.RecordEmotion(ctx, e); err != nil {
		a.logger.Warn("failed to record emotion audit",
			zap.String("memory_id", e.MemoryID.String()),
			zap.Error(err),
		)
	}
}

func (a auditor) planet(ctx context.Context, e domain.PlanetEvent) {
	if a.sink == nil {
		return
	}
	if err := a.sink.RecordPlanet(ctx, e); err != nil {
		a.logger.Warn("failed to record planet audit",
			zap.String("user_id", e.UserID.String()),
			zap.Error(err),
		)
	}
}

func (a auditor) ritual(ctx context.Context, e domain.RitualEvent) {
	if a.sink == nil {
		return
	}
	if err := a.sink.RecordRitual(ctx, e); err != nil {
		a.logger.Warn("failed to record ritual audit",
			zap.String("ritual_id", e.RitualID),
			zap.Error(err),
		)
	}
}
