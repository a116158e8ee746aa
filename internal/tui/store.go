package tui

import (
	"context"

	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/widget"
)

// Bookmarks is the bookmark persistence the app needs.
type Bookmarks interface {
	widget.BookmarkStore
	ListByUser(ctx context.Context, ownerID string) ([]widget.BookmarkRecord, error)
}

// Session is the authentication collaborator plus sign-in.
type Session interface {
	widget.SessionSource
	SignIn(ctx context.Context, email string) (*widget.User, error)
}

// BookmarkStore adapts the sqlite bookmark repository to widget records.
type BookmarkStore struct {
	repo *repository.BookmarkRepo
}

func NewBookmarkStore(repo *repository.BookmarkRepo) *BookmarkStore {
	return &BookmarkStore{repo: repo}
}

func (s *BookmarkStore) FindOne(ctx context.Context, ownerID, subjectID string) (*widget.BookmarkRecord, error) {
	b, err := s.repo.FindOne(ctx, ownerID, subjectID)
	if err != nil || b == nil {
		return nil, err
	}
	rec := toRecord(*b)
	return &rec, nil
}

func (s *BookmarkStore) Insert(ctx context.Context, ownerID, subjectID string) (*widget.BookmarkRecord, error) {
	b, err := s.repo.Insert(ctx, ownerID, subjectID)
	if err != nil {
		return nil, err
	}
	rec := toRecord(*b)
	return &rec, nil
}

func (s *BookmarkStore) Delete(ctx context.Context, ownerID, subjectID string) error {
	return s.repo.Delete(ctx, ownerID, subjectID)
}

func (s *BookmarkStore) ListByUser(ctx context.Context, ownerID string) ([]widget.BookmarkRecord, error) {
	rows, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]widget.BookmarkRecord, 0, len(rows))
	for _, b := range rows {
		out = append(out, toRecord(b))
	}
	return out, nil
}

func toRecord(b repository.Bookmark) widget.BookmarkRecord {
	return widget.BookmarkRecord{ID: b.ID, OwnerID: b.UserID, SubjectID: b.WebsiteSlug}
}
