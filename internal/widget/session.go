package widget

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// User is the signed-in account as the widgets see it.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Name is the label shown in the navbar.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// SessionSource is the authentication collaborator.
type SessionSource interface {
	CurrentUser(ctx context.Context) (*User, error)
	// Subscribe calls fn on every session change until the returned func is called.
	Subscribe(fn func(*User)) (unsubscribe func())
	SignOut(ctx context.Context) error
}

// SessionLoadedMsg carries the one-shot session fetch.
type SessionLoadedMsg struct {
	Menu uint64
	User *User
	Err  error
}

// SessionChangedMsg carries a subscription notification.
type SessionChangedMsg struct {
	Menu uint64
	User *User
}

// SignedOutMsg reports the outcome of a sign-out call.
type SignedOutMsg struct {
	Menu uint64
	Err  error
}

// MenuItem is an entry in the user dropdown.
type MenuItem string

const (
	MenuBookmarks MenuItem = "Bookmarks"
	MenuSignOut   MenuItem = "Sign out"
)

// MenuSelectedMsg is emitted for items the host handles (everything but sign-out).
type MenuSelectedMsg struct {
	Menu uint64
	Item MenuItem
}

type SessionMenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

var DefaultSessionMenuKeys = SessionMenuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Close:  key.NewBinding(key.WithKeys("esc", "u")),
}

// SessionMenu mirrors the external session and owns the user dropdown.
type SessionMenu struct {
	id     uint64
	ctx    context.Context
	source SessionSource

	user    *User
	loading bool
	open    bool
	cursor  int
	changed bool
	err     error

	unsubscribe func()
	updates     chan *User
	done        chan struct{}
	stopOnce    sync.Once
	mounted     bool
	dead        bool

	Items []MenuItem
	Keys  SessionMenuKeyMap
}

func NewSessionMenu(ctx context.Context, source SessionSource) *SessionMenu {
	return &SessionMenu{
		id:      newInstanceID(),
		ctx:     ctx,
		source:  source,
		loading: true,
		updates: make(chan *User, 1),
		done:    make(chan struct{}),
		Items:   []MenuItem{MenuBookmarks, MenuSignOut},
		Keys:    DefaultSessionMenuKeys,
	}
}

func (s *SessionMenu) ID() uint64      { return s.id }
func (s *SessionMenu) User() *User     { return s.user }
func (s *SessionMenu) IsLoading() bool { return s.loading }
func (s *SessionMenu) IsOpen() bool    { return s.open }
func (s *SessionMenu) Cursor() int     { return s.cursor }
func (s *SessionMenu) Err() error      { return s.err }

// Init fetches the session once and subscribes for the rest of the menu's life.
func (s *SessionMenu) Init() tea.Cmd {
	if s.mounted || s.dead || s.source == nil {
		return nil
	}
	s.mounted = true
	updates := s.updates
	s.unsubscribe = s.source.Subscribe(func(u *User) {
		// keep only the newest notification; never block the notifier
		for {
			select {
			case updates <- u:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	id, ctx, source := s.id, s.ctx, s.source
	fetch := func() tea.Msg {
		if ctx == nil {
			ctx = context.Background()
		}
		u, err := source.CurrentUser(ctx)
		if err != nil {
			err = fmt.Errorf("current user: %w", err)
		}
		return SessionLoadedMsg{Menu: id, User: u, Err: err}
	}
	return tea.Batch(fetch, s.waitForChange())
}

func (s *SessionMenu) waitForChange() tea.Cmd {
	id, updates, done := s.id, s.updates, s.done
	return func() tea.Msg {
		select {
		case u := <-updates:
			return SessionChangedMsg{Menu: id, User: u}
		case <-done:
			return nil
		}
	}
}

// Teardown drops the subscription. Results that arrive afterwards are ignored.
func (s *SessionMenu) Teardown() {
	s.stopOnce.Do(func() {
		s.dead = true
		s.open = false
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		close(s.done)
	})
}

// ToggleMenu opens or closes the dropdown. Without a user it does nothing.
func (s *SessionMenu) ToggleMenu() {
	if s.dead || s.user == nil {
		return
	}
	s.open = !s.open
	s.cursor = 0
}

// CloseMenu closes the dropdown.
func (s *SessionMenu) CloseMenu() { s.open = false }

// CaptureClick is the full-screen layer under an open menu: it closes the menu
// and reports the click as consumed. With the menu closed it lets clicks through.
func (s *SessionMenu) CaptureClick() bool {
	if !s.open {
		return false
	}
	s.open = false
	return true
}

// SignOut closes the menu right away and asks the source to end the session.
// The subscription, not this call, is what clears the user.
func (s *SessionMenu) SignOut() tea.Cmd {
	s.open = false
	if s.dead || s.source == nil {
		return nil
	}
	id, ctx, source := s.id, s.ctx, s.source
	return func() tea.Msg {
		if ctx == nil {
			ctx = context.Background()
		}
		err := source.SignOut(ctx)
		if err != nil {
			err = fmt.Errorf("sign out: %w", err)
		}
		return SignedOutMsg{Menu: id, Err: err}
	}
}

// Update applies session messages and, while open, dropdown keys.
func (s *SessionMenu) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionLoadedMsg:
		if msg.Menu != s.id {
			return false, nil
		}
		if s.dead {
			return true, nil
		}
		s.loading = false
		s.err = msg.Err
		// a notification that already arrived is newer than this fetch
		if !s.changed && msg.Err == nil {
			s.setUser(msg.User)
		}
		return true, nil
	case SessionChangedMsg:
		if msg.Menu != s.id {
			return false, nil
		}
		if s.dead {
			return true, nil
		}
		s.changed = true
		s.loading = false
		s.setUser(msg.User)
		return true, s.waitForChange()
	case SignedOutMsg:
		if msg.Menu != s.id {
			return false, nil
		}
		if !s.dead {
			s.err = msg.Err
		}
		return true, nil
	case tea.KeyMsg:
		if s.dead || !s.open {
			return false, nil
		}
		switch {
		case key.Matches(msg, s.Keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.Keys.Down):
			if s.cursor < len(s.Items)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.Keys.Select):
			return true, s.selectItem(s.Items[s.cursor])
		case key.Matches(msg, s.Keys.Close):
			s.open = false
		}
		return true, nil
	}
	return false, nil
}

// Choose runs the item at i, as a click on the open menu would.
func (s *SessionMenu) Choose(i int) tea.Cmd {
	if s.dead || !s.open || i < 0 || i >= len(s.Items) {
		return nil
	}
	return s.selectItem(s.Items[i])
}

func (s *SessionMenu) selectItem(item MenuItem) tea.Cmd {
	if item == MenuSignOut {
		return s.SignOut()
	}
	s.open = false
	id := s.id
	return func() tea.Msg { return MenuSelectedMsg{Menu: id, Item: item} }
}

func (s *SessionMenu) setUser(u *User) {
	s.user = u
	if u == nil {
		s.open = false
	}
}
