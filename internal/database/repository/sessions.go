package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SessionRepo handles sign-in sessions. At most one session is active at a time.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// Active returns the current session, or nil when signed out.
func (r *SessionRepo) Active(ctx context.Context) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, user_id, created_at, ended_at FROM sessions
	WHERE ended_at IS NULL ORDER BY created_at DESC LIMIT 1`)
	var s Session
	var ended sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &ended); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if ended.Valid {
		s.EndedAt = &ended.Time
	}
	return &s, nil
}

// Start ends any active session and opens a new one for userID.
func (r *SessionRepo) Start(ctx context.Context, id, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE ended_at IS NULL`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO sessions(id, user_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, id, userID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// EndAll closes every active session.
func (r *SessionRepo) EndAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE ended_at IS NULL`)
	return err
}
