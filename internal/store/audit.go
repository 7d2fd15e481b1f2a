package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditStore persists audit events to the audit_events table.
// It implements domain.AuditSink.
type AuditStore struct {
	db *pgxpool.Pool
}

func NewAuditStore(db *pgxpool.Pool) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) RecordEmotion(ctx context.Context, e domain.EmotionEvent) error {
	return s.insert(ctx, e.Record())
}

func (s *AuditStore) RecordPlanet(ctx context.Context, e domain.PlanetEvent) error {
	return s.insert(ctx, e.Record())
}

func (s *AuditStore) RecordRitual(ctx context.Context, e domain.RitualEvent) error {
	return s.insert(ctx, e.Record())
}

func (s *AuditStore) insert(ctx context.Context, r domain.AuditRecord) error {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO audit_events (id, user_id, kind, subject, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))`,
		r.ID, r.UserID, string(r.Kind), r.Subject, payload, nullTime(r),
	)
	return err
}

// List returns a user's audit records of one kind, most recent first.
// An empty kind returns every kind.
func (s *AuditStore) List(ctx context.Context, userID uuid.UUID, kind domain.AuditKind, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, kind, subject, payload, created_at
		 FROM audit_events
		 WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, string(kind), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditRecord
	for rows.Next() {
		var (
			r       domain.AuditRecord
			kindStr string
			payload []byte
		)
		if err := rows.Scan(&r.ID, &r.UserID, &kindStr, &r.Subject, &payload, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Kind = domain.AuditKind(kindStr)
		if err := json.Unmarshal(payload, &r.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal audit payload: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullTime(r domain.AuditRecord) any {
	if r.CreatedAt.IsZero() {
		return nil
	}
	return r.CreatedAt
}
