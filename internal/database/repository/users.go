package repository

import (
	"context"
	"database/sql"
	"errors"
)

// UserRepo handles users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Upsert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, email, display_name, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 email=excluded.email,
	 display_name=excluded.display_name;
	`, u.ID, u.Email, u.DisplayName)
	return err
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*User, error) {
	return r.one(ctx, `SELECT id, email, display_name, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, `SELECT id, email, display_name, created_at FROM users WHERE email = ?`, email)
}

func (r *UserRepo) one(ctx context.Context, query string, arg any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
