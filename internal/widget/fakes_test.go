package widget

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var errBoom = errors.New("boom")

// fakeEffects counts acquisitions and releases and lets tests press bound keys.
type fakeEffects struct {
	locks, lockReleases int
	binds, bindReleases int
	handlers            map[string]func()
}

func newFakeEffects() *fakeEffects { return &fakeEffects{handlers: map[string]func(){}} }

func (f *fakeEffects) LockScroll() func() {
	f.locks++
	return func() { f.lockReleases++ }
}

func (f *fakeEffects) BindKey(keys []string, fn func()) func() {
	f.binds++
	for _, k := range keys {
		f.handlers[k] = fn
	}
	return func() {
		f.bindReleases++
		for _, k := range keys {
			delete(f.handlers, k)
		}
	}
}

func (f *fakeEffects) press(k string) bool {
	fn, ok := f.handlers[k]
	if ok {
		fn()
	}
	return ok
}

type fakeHost struct {
	mu    sync.Mutex
	loads []string
	err   error
}

func (h *fakeHost) Load(_ context.Context, url string) (Content, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, url)
	if h.err != nil {
		return Content{}, h.err
	}
	return Content{Title: "Example Domain", Summary: url, Lines: []string{"hello"}}, nil
}

// fakeStore is an in-memory BookmarkStore that counts calls.
type fakeStore struct {
	mu                   sync.Mutex
	rows                 map[[2]string]bool
	finds, inserts, dels int
	failFind, failWrite  bool
}

func newFakeStore() *fakeStore { return &fakeStore{rows: map[[2]string]bool{}} }

func (s *fakeStore) FindOne(_ context.Context, owner, subject string) (*BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.failFind {
		return nil, errBoom
	}
	if !s.rows[[2]string{owner, subject}] {
		return nil, nil
	}
	return &BookmarkRecord{OwnerID: owner, SubjectID: subject}, nil
}

func (s *fakeStore) Insert(_ context.Context, owner, subject string) (*BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.failWrite {
		return nil, errBoom
	}
	s.rows[[2]string{owner, subject}] = true
	return &BookmarkRecord{OwnerID: owner, SubjectID: subject}, nil
}

func (s *fakeStore) Delete(_ context.Context, owner, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dels++
	if s.failWrite {
		return errBoom
	}
	delete(s.rows, [2]string{owner, subject})
	return nil
}

// fakeSession is a SessionSource with a settable user.
type fakeSession struct {
	mu         sync.Mutex
	user       *User
	subs       map[int]func(*User)
	next       int
	signOuts   int
	signOutErr error
	fetches    int
}

func newFakeSession(u *User) *fakeSession { return &fakeSession{user: u, subs: map[int]func(*User){}} }

func (s *fakeSession) CurrentUser(context.Context) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.user, nil
}

func (s *fakeSession) Subscribe(fn func(*User)) func() {
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

func (s *fakeSession) SignOut(context.Context) error {
	s.mu.Lock()
	s.signOuts++
	err := s.signOutErr
	s.mu.Unlock()
	if err == nil {
		s.set(nil)
	}
	return err
}

func (s *fakeSession) set(u *User) {
	s.mu.Lock()
	s.user = u
	subs := make([]func(*User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(u)
	}
}

func (s *fakeSession) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// run executes cmd and returns its message, or nil for a nil cmd.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
