package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-coach/internal/session"
)

// SessionRecord is one persisted interview session export.
type SessionRecord struct {
	ID              uuid.UUID       `json:"id"`
	ParticipantName string          `json:"participant_name"`
	Log             json.RawMessage `json:"log"`
	FinalFeedback   string          `json:"final_feedback"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SaveSession stores a finished session export. It implements session.Store.
func (db *DB) SaveSession(ctx context.Context, participantName string, doc session.ExportDoc) error {
	logBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal session log: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO interview_sessions (participant_name, log, final_feedback)
		 VALUES ($1, $2, $3)`,
		participantName, logBytes, doc.FinalFeedback,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves one persisted session by ID, nil when absent.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	var rec SessionRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, participant_name, log, final_feedback, created_at
		 FROM interview_sessions WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.ParticipantName, &rec.Log, &rec.FinalFeedback, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &rec, nil
}

// SessionSummary is a lightweight view of a persisted session for listing
type SessionSummary struct {
	ID              uuid.UUID `json:"id"`
	ParticipantName string    `json:"participant_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListSessions retrieves recent persisted sessions
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, participant_name, created_at
		 FROM interview_sessions ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.ParticipantName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// DeleteSession deletes a persisted session
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM interview_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}
