package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// BookmarkRepo handles bookmarks keyed by (user_id, website_slug).
type BookmarkRepo struct {
	db *sql.DB
}

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// FindOne returns the bookmark for the pair, or nil when there is none.
func (r *BookmarkRepo) FindOne(ctx context.Context, userID, slug string) (*Bookmark, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, user_id, website_slug, created_at FROM bookmarks
	WHERE user_id = ? AND website_slug = ?`, userID, slug)
	var b Bookmark
	if err := row.Scan(&b.ID, &b.UserID, &b.WebsiteSlug, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Insert stores a bookmark for the pair. Inserting an existing pair returns
// the stored row unchanged.
func (r *BookmarkRepo) Insert(ctx context.Context, userID, slug string) (*Bookmark, error) {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO bookmarks(id, user_id, website_slug, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(user_id, website_slug) DO NOTHING;
	`, uuid.NewString(), userID, slug)
	if err != nil {
		return nil, err
	}
	b, err := r.FindOne(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, sql.ErrNoRows
	}
	return b, nil
}

// Delete removes the bookmark for the pair. Deleting a missing pair is not an error.
func (r *BookmarkRepo) Delete(ctx context.Context, userID, slug string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = ? AND website_slug = ?`, userID, slug)
	return err
}

// ListByUser returns the user's bookmarks, newest first.
func (r *BookmarkRepo) ListByUser(ctx context.Context, userID string) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, user_id, website_slug, created_at FROM bookmarks
	WHERE user_id = ? ORDER BY created_at DESC, website_slug`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.WebsiteSlug, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
