// Package audit provides domain.AuditSink backends that do not need the main
// Postgres database: a local SQLite file and the structured log.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	kind         TEXT NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	payload_json TEXT NOT NULL DEFAULT '{}',
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_user_kind ON audit_events(user_id, kind, created_at);
`

// SQLiteSink writes audit events to a local SQLite file.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database at path and applies the schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	// Single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate audit schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) RecordEmotion(ctx context.Context, e domain.EmotionEvent) error {
	return s.record(ctx, e.Record())
}

func (s *SQLiteSink) RecordPlanet(ctx context.Context, e domain.PlanetEvent) error {
	return s.record(ctx, e.Record())
}

func (s *SQLiteSink) RecordRitual(ctx context.Context, e domain.RitualEvent) error {
	return s.record(ctx, e.Record())
}

func (s *SQLiteSink) record(ctx context.Context, r domain.AuditRecord) error {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	at := r.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}

	const q = `INSERT INTO audit_events (id, user_id, kind, subject, payload_json, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, q,
		r.ID.String(),
		r.UserID.String(),
		string(r.Kind),
		r.Subject,
		string(payload),
		at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// List returns a user's records, most recent first.
func (s *SQLiteSink) List(ctx context.Context, userID uuid.UUID, kind domain.AuditKind, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT id, user_id, kind, subject, payload_json, created_at
FROM audit_events
WHERE user_id = ? AND (? = '' OR kind = ?)
ORDER BY created_at DESC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, userID.String(), string(kind), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var (
			r                    domain.AuditRecord
			id, user, k, payload string
			at                   int64
		)
		if err := rows.Scan(&id, &user, &k, &r.Subject, &payload, &at); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse audit id: %w", err)
		}
		if r.UserID, err = uuid.Parse(user); err != nil {
			return nil, fmt.Errorf("parse audit user id: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &r.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal audit payload: %w", err)
		}
		r.Kind = domain.AuditKind(k)
		r.CreatedAt = time.Unix(0, at).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}
