package widget

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// BookmarkRecord is a stored bookmark keyed by (owner, subject).
type BookmarkRecord struct {
	ID        string
	OwnerID   string
	SubjectID string
}

// BookmarkStore is the persistence collaborator behind Bookmark.
type BookmarkStore interface {
	FindOne(ctx context.Context, ownerID, subjectID string) (*BookmarkRecord, error)
	Insert(ctx context.Context, ownerID, subjectID string) (*BookmarkRecord, error)
	Delete(ctx context.Context, ownerID, subjectID string) error
}

// BookmarkStatus is the state of a Bookmark.
type BookmarkStatus int

const (
	BookmarkUnknown BookmarkStatus = iota
	BookmarkLoading
	Bookmarked
	NotBookmarked
)

func (s BookmarkStatus) String() string {
	switch s {
	case BookmarkLoading:
		return "loading"
	case Bookmarked:
		return "bookmarked"
	case NotBookmarked:
		return "not bookmarked"
	default:
		return "unknown"
	}
}

// BookmarkCheckedMsg carries the result of the initial read.
type BookmarkCheckedMsg struct {
	Bookmark uint64
	OwnerID  string
	Found    bool
	Err      error
}

// BookmarkToggledMsg carries the result of a write.
type BookmarkToggledMsg struct {
	Bookmark   uint64
	Subject    string
	Bookmarked bool
	Err        error
}

// SignInRequiredMsg is emitted instead of a write when nobody is signed in.
type SignInRequiredMsg struct {
	Subject string
}

// Bookmark toggles a bookmark on one subject for the signed-in owner.
// Writes are pessimistic: the status stays Loading until the store confirms,
// and a failed write restores the last confirmed status.
type Bookmark struct {
	id      uint64
	ctx     context.Context
	store   BookmarkStore
	session SessionSource
	timeout time.Duration

	subject   string
	ownerID   string
	status    BookmarkStatus
	confirmed BookmarkStatus
	err       error
	dead      bool
}

// NewBookmark returns a controller in the Unknown state. Call Init once on mount.
func NewBookmark(ctx context.Context, store BookmarkStore, session SessionSource, subject string, timeout time.Duration) *Bookmark {
	return &Bookmark{
		id:        newInstanceID(),
		ctx:       ctx,
		store:     store,
		session:   session,
		timeout:   timeout,
		subject:   subject,
		status:    BookmarkUnknown,
		confirmed: NotBookmarked,
	}
}

func (b *Bookmark) ID() uint64             { return b.id }
func (b *Bookmark) Subject() string        { return b.subject }
func (b *Bookmark) OwnerID() string        { return b.ownerID }
func (b *Bookmark) Status() BookmarkStatus { return b.status }
func (b *Bookmark) Busy() bool             { return b.status == BookmarkLoading || b.status == BookmarkUnknown }

// Err is the last failure, cleared by the next successful round trip.
func (b *Bookmark) Err() error { return b.err }

// Label is the button text.
func (b *Bookmark) Label() string {
	if b.status == Bookmarked {
		return "Bookmarked"
	}
	return "Bookmark"
}

// Init resolves the owner and performs the single read for this mount.
func (b *Bookmark) Init() tea.Cmd {
	if b.dead || b.status != BookmarkUnknown {
		return nil
	}
	b.status = BookmarkLoading
	id, subject := b.id, b.subject
	return func() tea.Msg {
		ctx, cancel := b.deadline()
		defer cancel()
		msg := BookmarkCheckedMsg{Bookmark: id}
		if b.session == nil {
			return msg
		}
		user, err := b.session.CurrentUser(ctx)
		if err != nil {
			msg.Err = fmt.Errorf("current user: %w", err)
			return msg
		}
		if user == nil {
			return msg
		}
		msg.OwnerID = user.ID
		rec, err := b.store.FindOne(ctx, user.ID, subject)
		if err != nil {
			msg.Err = fmt.Errorf("find bookmark %s: %w", subject, err)
			return msg
		}
		msg.Found = rec != nil
		return msg
	}
}

// Toggle flips the bookmark. Without an owner it asks for sign-in instead and
// changes nothing. While a read or write is in flight it does nothing.
func (b *Bookmark) Toggle() tea.Cmd {
	if b.dead || b.Busy() {
		return nil
	}
	if b.ownerID == "" {
		subject := b.subject
		return func() tea.Msg { return SignInRequiredMsg{Subject: subject} }
	}
	id, owner, subject, store := b.id, b.ownerID, b.subject, b.store
	remove := b.status == Bookmarked
	b.status = BookmarkLoading
	return func() tea.Msg {
		ctx, cancel := b.deadline()
		defer cancel()
		msg := BookmarkToggledMsg{Bookmark: id, Subject: subject, Bookmarked: !remove}
		if remove {
			if err := store.Delete(ctx, owner, subject); err != nil {
				msg.Err = fmt.Errorf("delete bookmark %s: %w", subject, err)
			}
			return msg
		}
		if _, err := store.Insert(ctx, owner, subject); err != nil {
			msg.Err = fmt.Errorf("insert bookmark %s: %w", subject, err)
		}
		return msg
	}
}

// Teardown stops the controller from applying results that arrive later.
func (b *Bookmark) Teardown() { b.dead = true }

// Update applies round-trip results addressed to this instance.
func (b *Bookmark) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case BookmarkCheckedMsg:
		if msg.Bookmark != b.id {
			return false
		}
		if b.dead || b.status != BookmarkLoading {
			return true
		}
		b.ownerID = msg.OwnerID
		b.err = msg.Err
		b.confirmed = NotBookmarked
		if msg.Err == nil && msg.Found {
			b.confirmed = Bookmarked
		}
		b.status = b.confirmed
		return true
	case BookmarkToggledMsg:
		if msg.Bookmark != b.id {
			return false
		}
		if b.dead || b.status != BookmarkLoading {
			return true
		}
		b.err = msg.Err
		if msg.Err == nil {
			b.confirmed = NotBookmarked
			if msg.Bookmarked {
				b.confirmed = Bookmarked
			}
		}
		b.status = b.confirmed
		return true
	}
	return false
}

func (b *Bookmark) deadline() (context.Context, context.CancelFunc) {
	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if b.timeout > 0 {
		return context.WithTimeout(ctx, b.timeout)
	}
	return context.WithCancel(ctx)
}
