// Package auth keeps the local sign-in session in sqlite and notifies
// subscribers whenever it changes.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/widget"
)

var (
	ErrNotSignedIn  = errors.New("not signed in")
	ErrInvalidEmail = errors.New("invalid email address")
)

// Provider implements widget.SessionSource. It is safe for concurrent use.
type Provider struct {
	users    *repository.UserRepo
	sessions *repository.SessionRepo
	log      *slog.Logger

	mu     sync.Mutex
	subs   map[uint64]func(*widget.User)
	nextID uint64
}

func NewProvider(db *sql.DB, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		users:    repository.NewUserRepo(db),
		sessions: repository.NewSessionRepo(db),
		log:      log,
		subs:     map[uint64]func(*widget.User){},
	}
}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
func (p *Provider) CurrentUser(ctx context.Context) (*widget.User, error) {
	s, err := p.sessions.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("active session: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	u, err := p.users.ByID(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("session user: %w", err)
	}
	if u == nil {
		return nil, nil
	}
	return toWidget(u), nil
}

// Subscribe registers fn for session changes. The returned func removes it.
func (p *Provider) Subscribe(fn func(*widget.User)) func() {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// SignIn starts a session for email, creating the user on first sign-in.
func (p *Provider) SignIn(ctx context.Context, email string) (*widget.User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	normalized := strings.ToLower(addr.Address)
	u, err := p.users.ByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		u = &repository.User{
			ID:          database.UserID(normalized),
			Email:       normalized,
			DisplayName: displayName(addr),
		}
		if err := p.users.Upsert(ctx, *u); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		p.log.Info("user created", "user_id", u.ID)
	}
	if err := p.sessions.Start(ctx, uuid.NewString(), u.ID); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	p.log.Info("signed in", "user_id", u.ID)
	user := toWidget(u)
	p.notify(user)
	return user, nil
}

// SignOut ends the active session. Signing out while signed out returns ErrNotSignedIn.
func (p *Provider) SignOut(ctx context.Context) error {
	s, err := p.sessions.Active(ctx)
	if err != nil {
		return fmt.Errorf("active session: %w", err)
	}
	if s == nil {
		return ErrNotSignedIn
	}
	if err := p.sessions.EndAll(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	p.log.Info("signed out", "user_id", s.UserID)
	p.notify(nil)
	return nil
}

func (p *Provider) notify(u *widget.User) {
	p.mu.Lock()
	fns := make([]func(*widget.User), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

func toWidget(u *repository.User) *widget.User {
	return &widget.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

func displayName(addr *mail.Address) string {
	if addr.Name != "" {
		return addr.Name
	}
	local, _, _ := strings.Cut(addr.Address, "@")
	return local
}
