package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kakeibo/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `
		INSERT INTO sessions (id, user_id, csrf_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	selectSessionSQL = `
		SELECT id, user_id, csrf_token, expires_at, created_at
		FROM sessions WHERE id = ? AND expires_at > ?
	`
	updateSessionCSRFSQL     = `UPDATE sessions SET csrf_token = ? WHERE id = ?`
	deleteSessionSQL         = `DELETE FROM sessions WHERE id = ?`
	deleteExpiredSessionsSQL = `DELETE FROM sessions WHERE expires_at <= ?`
)

// Create stores a new session row.
func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	var userID sql.NullInt64
	if s.UserID != nil {
		userID = sql.NullInt64{Int64: *s.UserID, Valid: true}
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, insertSessionSQL,
		s.ID,
		userID,
		s.CSRFToken,
		s.ExpiresAt.Unix(),
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a live session (expires_at after now). Returns (nil, nil) if absent or expired.
func (r *SessionSQLite) Get(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	var (
		s         models.Session
		userID    sql.NullInt64
		expiresAt int64
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id, now.Unix()).
		Scan(&s.ID, &userID, &s.CSRFToken, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	if userID.Valid {
		uid := userID.Int64
		s.UserID = &uid
	}
	s.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	s.CreatedAt = parseTimestamp(createdAt)
	return &s, nil
}

// SetCSRFToken stores the session's CSRF token.
func (r *SessionSQLite) SetCSRFToken(ctx context.Context, id, token string) error {
	if _, err := r.db.ExecContext(ctx, updateSessionCSRFSQL, token, id); err != nil {
		return fmt.Errorf("update session csrf token: %w", err)
	}
	return nil
}

// Delete removes a session; deleting an unknown id is not an error.
func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry is not after now.
func (r *SessionSQLite) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessionsSQL, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for expired sessions: %w", err)
	}
	return n, nil
}
