package widget

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Effects is what an open modal takes from its host for as long as it is open.
type Effects interface {
	// LockScroll stops the page behind the modal from scrolling until release is called.
	LockScroll() (release func())
	// BindKey routes the keys to fn ahead of every other handler until release is called.
	BindKey(keys []string, fn func()) (release func())
}

// Content is what an embed host produced for a URL.
type Content struct {
	Title    string
	Summary  string
	Lines    []string
	Images   []string
	External string
}

// EmbedHost loads the embedded page for the modal. Each call is a fresh
// instance; there is no in-place refresh.
type EmbedHost interface {
	Load(ctx context.Context, url string) (Content, error)
}

// ModalPhase is the visibility state of a Modal.
type ModalPhase int

const (
	ModalClosed ModalPhase = iota
	ModalOpening
	ModalOpen
)

func (p ModalPhase) String() string {
	switch p {
	case ModalOpening:
		return "opening"
	case ModalOpen:
		return "open"
	default:
		return "closed"
	}
}

// ModalState is the observable state of a Modal.
type ModalState struct {
	IsOpen           bool
	IsContentLoading bool
	InstanceKey      int
}

// ContentReadyMsg is the one-shot signal from an embed instance.
type ContentReadyMsg struct {
	Modal   uint64
	Key     int
	Content Content
	Err     error
}

// OpenExternalMsg asks the host to open URL outside the app.
type OpenExternalMsg struct {
	URL string
}

// ModalKeyMap binds modal actions other than Escape, which is bound through Effects.
type ModalKeyMap struct {
	Reload   key.Binding
	External key.Binding
}

var DefaultModalKeys = ModalKeyMap{
	Reload:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload")),
	External: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open externally")),
}

// Modal previews a URL through an EmbedHost.
type Modal struct {
	id      uint64
	ctx     context.Context
	host    EmbedHost
	effects Effects
	timeout time.Duration

	phase   ModalPhase
	loading bool
	key     int
	scope   *Scope
	dead    bool

	url     string
	title   string
	content Content
	err     error

	Keys ModalKeyMap
}

// NewModal returns a closed modal. A zero timeout means no deadline beyond ctx.
func NewModal(ctx context.Context, host EmbedHost, effects Effects, timeout time.Duration) *Modal {
	return &Modal{
		id:      newInstanceID(),
		ctx:     ctx,
		host:    host,
		effects: effects,
		timeout: timeout,
		loading: true,
		Keys:    DefaultModalKeys,
	}
}

func (m *Modal) ID() uint64        { return m.id }
func (m *Modal) Phase() ModalPhase { return m.phase }
func (m *Modal) IsOpen() bool      { return m.phase != ModalClosed }
func (m *Modal) URL() string       { return m.url }
func (m *Modal) Title() string     { return m.title }
func (m *Modal) Content() Content  { return m.content }
func (m *Modal) Err() error        { return m.err }

func (m *Modal) State() ModalState {
	return ModalState{IsOpen: m.IsOpen(), IsContentLoading: m.loading, InstanceKey: m.key}
}

// Open shows url. Loading restarts on every call, including when already open.
// Every call embeds a fresh instance under a new key.
func (m *Modal) Open(url, title string) tea.Cmd {
	if m.dead {
		return nil
	}
	m.url, m.title = url, title
	if m.phase == ModalClosed {
		m.acquire()
	}
	m.key++
	m.phase = ModalOpening
	m.loading = true
	m.content, m.err = Content{}, nil
	return m.load()
}

// Reload recreates the embedded content under a new instance key.
func (m *Modal) Reload() tea.Cmd {
	if m.dead || m.phase == ModalClosed {
		return nil
	}
	m.key++
	m.phase = ModalOpening
	m.loading = true
	m.content, m.err = Content{}, nil
	return m.load()
}

// ContentReady moves Opening to Open for the current instance key only.
func (m *Modal) ContentReady(key int) bool {
	if m.dead || m.phase != ModalOpening || key != m.key {
		return false
	}
	m.phase = ModalOpen
	m.loading = false
	return true
}

// Close hides the modal and releases its effects. Closing a closed modal does nothing.
func (m *Modal) Close() {
	if m.phase == ModalClosed {
		return
	}
	m.phase = ModalClosed
	m.scope.Release()
	m.scope = nil
}

// BackdropClick closes the modal; the host calls it for clicks outside the card.
func (m *Modal) BackdropClick() { m.Close() }

// Teardown closes the modal and makes it ignore everything afterwards.
func (m *Modal) Teardown() {
	m.Close()
	m.dead = true
}

// OpenExternal hands the previewed URL to the host.
func (m *Modal) OpenExternal() tea.Cmd {
	if m.dead || m.phase == ModalClosed || m.url == "" {
		return nil
	}
	target := m.url
	if m.content.External != "" {
		target = m.content.External
	}
	return func() tea.Msg { return OpenExternalMsg{URL: target} }
}

// Update applies ready signals and modal keys. It reports whether msg was
// consumed; key messages are only consumed while open.
func (m *Modal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case ContentReadyMsg:
		if msg.Modal != m.id {
			return false, nil
		}
		if m.ContentReady(msg.Key) {
			m.content, m.err = msg.Content, msg.Err
		}
		return true, nil
	case tea.KeyMsg:
		if m.dead || m.phase == ModalClosed {
			return false, nil
		}
		switch {
		case key.Matches(msg, m.Keys.Reload):
			return true, m.Reload()
		case key.Matches(msg, m.Keys.External):
			return true, m.OpenExternal()
		}
		// the page behind does not receive keys while the modal is up
		return true, nil
	}
	return false, nil
}

func (m *Modal) acquire() {
	m.scope = &Scope{}
	if m.effects == nil {
		return
	}
	m.scope.Acquire(m.effects.LockScroll())
	m.scope.Acquire(m.effects.BindKey([]string{"esc"}, m.Close))
}

func (m *Modal) load() tea.Cmd {
	if m.host == nil {
		return nil
	}
	id, key, url := m.id, m.key, m.url
	ctx, host, timeout := m.ctx, m.host, m.timeout
	return func() tea.Msg {
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		content, err := host.Load(ctx, url)
		return ContentReadyMsg{Modal: id, Key: key, Content: content, Err: err}
	}
}

var schemePrefix = regexp.MustCompile(`^https?://`)

// DisplayURL strips the scheme and a trailing slash for the address bar.
func DisplayURL(url string) string {
	return strings.TrimSuffix(schemePrefix.ReplaceAllString(url, ""), "/")
}
