package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/logging"
	"github.com/jask/showcase/internal/widget"
)

type fakeSession struct {
	mu       sync.Mutex
	user     *widget.User
	subs     map[int]func(*widget.User)
	next     int
	signOuts int
}

func newFakeSession(u *widget.User) *fakeSession {
	return &fakeSession{user: u, subs: map[int]func(*widget.User){}}
}

func (s *fakeSession) CurrentUser(context.Context) (*widget.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

func (s *fakeSession) Subscribe(fn func(*widget.User)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *fakeSession) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *fakeSession) SignIn(_ context.Context, email string) (*widget.User, error) {
	if !strings.Contains(email, "@") {
		return nil, errors.New("bad email")
	}
	u := &widget.User{ID: "u-" + email, Email: email}
	s.set(u)
	return u, nil
}

func (s *fakeSession) SignOut(context.Context) error {
	s.mu.Lock()
	s.signOuts++
	s.mu.Unlock()
	s.set(nil)
	return nil
}

func (s *fakeSession) set(u *widget.User) {
	s.mu.Lock()
	s.user = u
	fns := make([]func(*widget.User), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

type fakeStore struct {
	mu      sync.Mutex
	rows    []widget.BookmarkRecord
	inserts int
	deletes int
	gate    chan struct{}
}

func (s *fakeStore) wait(ctx context.Context) error {
	if s.gate == nil {
		return nil
	}
	select {
	case <-s.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) FindOne(_ context.Context, owner, subject string) (*widget.BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.OwnerID == owner && r.SubjectID == subject {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Insert(ctx context.Context, owner, subject string) (*widget.BookmarkRecord, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	rec := widget.BookmarkRecord{ID: subject, OwnerID: owner, SubjectID: subject}
	s.rows = append(s.rows, rec)
	return &rec, nil
}

func (s *fakeStore) Delete(ctx context.Context, owner, subject string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	out := s.rows[:0]
	for _, r := range s.rows {
		if r.OwnerID != owner || r.SubjectID != subject {
			out = append(out, r)
		}
	}
	s.rows = out
	return nil
}

func (s *fakeStore) ListByUser(_ context.Context, owner string) ([]widget.BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []widget.BookmarkRecord
	for _, r := range s.rows {
		if r.OwnerID == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeHost struct{}

func (fakeHost) Load(_ context.Context, url string) (widget.Content, error) {
	return widget.Content{Title: "Preview of " + url, Lines: []string{"hello"}, External: url}, nil
}

type testEnv struct {
	app     *App
	session *fakeSession
	store   *fakeStore
	opened  []string
	saved   []config.Config
	saveErr error
}

func newTestApp(t *testing.T, user *widget.User, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	cat, err := directory.Seed()
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{session: newFakeSession(user), store: &fakeStore{}}
	cfg := config.Config{
		Preview: config.PreviewConfig{Mode: config.PreviewSnapshot, Timeout: time.Second},
		Storage: config.StorageConfig{Timeout: time.Second},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	env.app = New(context.Background(), cfg, Deps{
		Catalog:   cat,
		Session:   env.session,
		Bookmarks: env.store,
		Preview:   fakeHost{},
		Opener: func(_ context.Context, url string) error {
			env.opened = append(env.opened, url)
			return nil
		},
		SaveConfig: func(c config.Config) error {
			env.saved = append(env.saved, c)
			return env.saveErr
		},
		Log: logging.Discard(),
	})
	env.app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	settle(t, env.app, env.app.Init())
	t.Cleanup(env.app.menu.Teardown)
	return env
}

// settle feeds the messages produced by cmd back into the app until nothing
// is left. Commands that block (the session subscription) are abandoned.
func settle(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatalf("update loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		_, next := a.Update(msg)
		queue = append(queue, collect(next)...)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}
	switch m := msg.(type) {
	case nil, spinner.TickMsg, cursor.BlinkMsg, tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(t *testing.T, a *App, k string) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	settle(t, a, cmd)
}

func click(t *testing.T, a *App, x, y int) {
	t.Helper()
	_, cmd := a.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	settle(t, a, cmd)
}

func open(t *testing.T, a *App, r Route) {
	t.Helper()
	_, cmd := a.Update(navigateMsg{route: r})
	settle(t, a, cmd)
	if got := a.page.Route(); got.Kind != r.Kind || got.Slug != r.Slug {
		t.Fatalf("page = %s, want %s", got, r)
	}
}
