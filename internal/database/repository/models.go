package repository

import "time"

// User represents a users row.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// Session represents a sign-in session. EndedAt is nil while the session is active.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	EndedAt   *time.Time
}

// Bookmark ties a user to a website listing by slug.
type Bookmark struct {
	ID          string
	UserID      string
	WebsiteSlug string
	CreatedAt   time.Time
}
