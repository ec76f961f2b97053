package interactionlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) Append(ctx context.Context, e *Entry) error {
	var id string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO assistant_interactions (user_id, session_id, user_input, ai_response, intent, action_type, rating)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at
    `,
		nullIfEmpty(e.UserID), nullIfEmpty(e.SessionID), e.UserInput, e.AIResponse,
		nullIfEmpty(e.Intent), nullIfEmpty(e.ActionType), e.Rating,
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	e.ID = id
	e.CreatedAt = createdAt
	return nil
}

// Aggregates computes batch statistics over the log. This runs offline
// reporting queries and is never called from the request path.
func (s *PostgresStore) Aggregates(ctx context.Context, since time.Time) (*Aggregates, error) {
	agg := &Aggregates{ActionCounts: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
        SELECT count(*),
               count(rating),
               coalesce(avg(rating), 0)
        FROM assistant_interactions
        WHERE created_at >= $1
    `, since).Scan(&agg.TotalTurns, &agg.RatedTurns, &agg.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("interaction aggregates: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT action_type, count(*)
        FROM assistant_interactions
        WHERE created_at >= $1 AND action_type IS NOT NULL
        GROUP BY action_type
    `, since)
	if err != nil {
		return nil, fmt.Errorf("interaction action counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		agg.ActionCounts[action] = count
	}
	return agg, rows.Err()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
