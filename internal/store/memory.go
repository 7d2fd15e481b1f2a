package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemoryStore struct {
	db *pgxpool.Pool
}

func NewMemoryStore(db *pgxpool.Pool) *MemoryStore {
	return &MemoryStore{db: db}
}

const memoryColumns = `id, user_id, content, raw_label, detected_emotion, confidence, manual_override, keywords, is_private, created_at, updated_at`

func (s *MemoryStore) Create(ctx context.Context, m *domain.Memory) error {
	if m.Keywords == nil {
		m.Keywords = []string{}
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO memories (user_id, content, raw_label, detected_emotion, confidence, manual_override, keywords, is_private)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		m.UserID, m.Content, m.RawLabel, string(m.DetectedEmotion), m.Confidence, overrideArg(m.ManualOverride), m.Keywords, m.IsPrivate,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Memory, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	m, err := scanMemory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns a user's memories, private ones included, most recent first.
func (s *MemoryStore) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Memory, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT `+memoryColumns+` FROM memories
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return collectMemories(rows)
}

// Update applies the non-nil fields of u. An empty update returns the memory unchanged.
func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, u domain.MemoryUpdate) (*domain.Memory, error) {
	if u.Empty() {
		return s.GetByID(ctx, id, userID)
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{id, userID}
	argIdx := 3

	if u.ManualOverride != nil {
		sets = append(sets, fmt.Sprintf("manual_override = $%d", argIdx))
		args = append(args, string(*u.ManualOverride))
		argIdx++
	}
	if u.IsPrivate != nil {
		sets = append(sets, fmt.Sprintf("is_private = $%d", argIdx))
		args = append(args, *u.IsPrivate)
		argIdx++
	}
	if u.Keywords != nil {
		sets = append(sets, fmt.Sprintf("keywords = $%d", argIdx))
		args = append(args, u.Keywords)
	}

	row := s.db.QueryRow(ctx,
		`UPDATE memories SET `+strings.Join(sets, ", ")+`
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+memoryColumns,
		args...,
	)
	m, err := scanMemory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM memories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// History returns the non-private memories of a user, most recent first.
// Ties on created_at are broken by id so snapshots are stable.
func (s *MemoryStore) History(ctx context.Context, userID uuid.UUID, opts domain.HistoryOpts) ([]domain.Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE user_id = $1 AND is_private = FALSE`
	args := []any{userID}
	argIdx := 2

	if !opts.Since.IsZero() {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, opts.Since)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectMemories(rows)
}

func collectMemories(rows pgx.Rows) ([]domain.Memory, error) {
	defer rows.Close()

	var out []domain.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func scanMemory(row pgx.Row) (*domain.Memory, error) {
	m := &domain.Memory{}
	var (
		detected string
		override *string
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Content, &m.RawLabel, &detected, &m.Confidence, &override, &m.Keywords, &m.IsPrivate, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.DetectedEmotion = domain.Emotion(detected)
	if override != nil {
		e := domain.Emotion(*override)
		m.ManualOverride = &e
	}
	return m, nil
}

func overrideArg(e *domain.Emotion) *string {
	if e == nil {
		return nil
	}
	s := string(*e)
	return &s
}
