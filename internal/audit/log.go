package audit

import (
	"context"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"go.uber.org/zap"
)

// LogSink writes audit events as structured log lines.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

func (s *LogSink) RecordEmotion(_ context.Context, e domain.EmotionEvent) error {
	s.logger.Info("emotion assigned",
		zap.String("user_id", e.UserID.String()),
		zap.String("memory_id", e.MemoryID.String()),
		zap.String("emotion", string(e.Emotion)),
		zap.Float64("score", e.Score),
		zap.String("element", e.Element),
		zap.Bool("override", e.Override),
	)
	return nil
}

func (s *LogSink) RecordPlanet(_ context.Context, e domain.PlanetEvent) error {
	s.logger.Info("planet computed",
		zap.String("user_id", e.UserID.String()),
		zap.String("planet", string(e.Planet)),
		zap.String("dominant", string(e.Dominant)),
		zap.Strings("palette", e.Palette),
		zap.String("theme", e.Theme),
	)
	return nil
}

func (s *LogSink) RecordRitual(_ context.Context, e domain.RitualEvent) error {
	s.logger.Info("ritual selected",
		zap.String("user_id", e.UserID.String()),
		zap.String("ritual_id", e.RitualID),
		zap.Strings("emotion_path", e.EmotionPath.Strings()),
		zap.String("state", string(e.State)),
		zap.Bool("user_override", e.UserOverride),
	)
	return nil
}
