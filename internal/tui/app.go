// Package tui is the Bubble Tea front end: a navbar over one page at a time,
// with the preview modal and the account menu drawn on top.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
	"github.com/jask/showcase/internal/overlay"
	"github.com/jask/showcase/internal/widget"
)

// Deps are the collaborators the app is wired with.
type Deps struct {
	Catalog   *directory.Catalog
	Session   Session
	Bookmarks Bookmarks
	Preview   widget.EmbedHost
	Opener    Opener
	// SaveConfig persists settings changed from inside the app. Defaults to config.Save.
	SaveConfig func(config.Config) error
	Log        *slog.Logger
}

// App ties together the navbar, the current page and the overlays.
type App struct {
	ctx       context.Context
	cfg       config.Config
	catalog   *directory.Catalog
	session   Session
	bookmarks Bookmarks
	preview   widget.EmbedHost
	opener    Opener
	save      func(config.Config) error
	log       *slog.Logger

	keys    *keys.Registry
	effects *effects
	theme   theme

	menu     *widget.SessionMenu
	page     page
	history  routeStack
	pageSeq  uint64
	viewport viewport.Model
	spinner  spinner.Model

	width, height int
	status        string
	statusErr     bool

	frame     string
	navZones  []zone
	modalRect overlay.Rect
	menuRect  overlay.Rect
	quitting  bool
	closed    bool
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opener := deps.Opener
	if opener == nil {
		opener = SystemOpener
	}
	save := deps.SaveConfig
	if save == nil {
		save = config.Save
	}
	reg := keys.NewRegistry(keys.ApplyOverrides(keys.Defaults(), cfg.Keys))
	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		catalog:   deps.Catalog,
		session:   deps.Session,
		bookmarks: deps.Bookmarks,
		preview:   deps.Preview,
		opener:    opener,
		save:      save,
		log:       log,
		keys:      reg,
		effects:   &effects{keys: reg},
		theme:     newTheme(cfg.UI.Accent),
		menu:      widget.NewSessionMenu(ctx, deps.Session),
		viewport:  viewport.New(80, 20),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:     80,
		height:    24,
	}
	a.page = newWebsitesPage(a)
	a.render()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.page.Init(a), a.spinner.Tick)
}

func (a *App) nextPageID() uint64 {
	a.pageSeq++
	return a.pageSeq
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.quitting {
		a.teardown()
		return a, tea.Quit
	}
	a.render()
	return a, cmd
}

// teardown releases the widgets of the current page and the session
// subscription held by the account menu.
func (a *App) teardown() {
	if a.closed {
		return
	}
	a.closed = true
	a.page.Teardown()
	a.menu.Teardown()
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		return a.handleMouse(m)
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return cmd
	case navigateMsg:
		return a.navigate(m.route, true)
	case statusMsg:
		a.status, a.statusErr = m.text, m.isErr
		return nil
	case errMsg:
		a.status, a.statusErr = "error: "+m.Error(), true
		return nil
	case externalOpenedMsg:
		if m.err != nil {
			a.log.Warn("open external failed", "url", m.url, "err", m.err)
			a.status, a.statusErr = "could not open "+widget.DisplayURL(m.url), true
			return nil
		}
		a.status, a.statusErr = "opened "+widget.DisplayURL(m.url)+" in your browser", false
		return nil
	case widget.OpenExternalMsg:
		return a.openExternal(m.URL)
	case widget.SignInRequiredMsg:
		a.log.Info("sign in required", "website", m.Subject)
		back := a.page.Route()
		return a.navigate(Route{Kind: routeSignIn, Next: &back}, true)
	case widget.SessionLoadedMsg, widget.SessionChangedMsg, widget.SignedOutMsg, widget.MenuSelectedMsg:
		return a.handleSession(msg)
	}
	if handled, cmd := a.page.Update(a, msg); handled {
		return cmd
	}
	switch msg.(type) {
	case widget.BookmarkCheckedMsg, widget.BookmarkToggledMsg, widget.ContentReadyMsg, bookmarksLoadedMsg, signedInMsg:
		a.log.Debug("dropped result for a page that is gone", "msg", fmt.Sprintf("%T", msg))
	}
	return nil
}

func (a *App) handleSession(msg tea.Msg) tea.Cmd {
	before := a.menu.User()
	_, cmd := a.menu.Update(msg)
	switch m := msg.(type) {
	case widget.SessionLoadedMsg:
		if m.Err != nil {
			a.log.Warn("load session failed", "err", m.Err)
		}
	case widget.SignedOutMsg:
		if m.Err != nil {
			a.log.Warn("sign out failed", "err", m.Err)
			a.status, a.statusErr = "sign out failed", true
		} else {
			a.status, a.statusErr = "signed out", false
		}
	case widget.MenuSelectedMsg:
		if m.Menu == a.menu.ID() && m.Item == widget.MenuBookmarks {
			return a.navigate(Route{Kind: routeBookmarks}, true)
		}
	case widget.SessionChangedMsg:
		if sameUser(before, a.menu.User()) {
			return cmd
		}
		if _, ok := a.page.(sessionPage); ok {
			// remount so reads happen for the new owner
			return tea.Batch(cmd, a.navigate(a.page.Route(), false))
		}
	}
	return cmd
}

func sameUser(x, y *widget.User) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.ID == y.ID
}

// navigate tears down the current page and mounts the page for r.
func (a *App) navigate(r Route, push bool) tea.Cmd {
	next, err := a.build(r)
	if err != nil {
		a.log.Warn("navigate failed", "route", r.String(), "err", err)
		a.status, a.statusErr = err.Error(), true
		return nil
	}
	a.page.Teardown()
	if from := a.page.Route(); from.Kind == routeSignIn {
		// the page that asked for sign-in is already on the stack
		if top, ok := a.history.Top(); ok && top.Kind == r.Kind && top.Slug == r.Slug {
			a.history.Pop()
		}
	} else if push {
		a.history.Push(from)
	}
	a.menu.CloseMenu()
	a.page = next
	a.viewport.GotoTop()
	a.log.Debug("navigate", "route", r.String())
	return next.Init(a)
}

func (a *App) back() tea.Cmd {
	r, ok := a.history.Pop()
	if !ok {
		if a.page.Route().Kind == routeWebsites {
			return nil
		}
		r = Route{Kind: routeWebsites}
	}
	return a.navigate(r, false)
}

func (a *App) build(r Route) (page, error) {
	switch r.Kind {
	case routeWebsites:
		return newWebsitesPage(a), nil
	case routeCreators:
		return newCreatorsPage(a), nil
	case routeWebsite:
		w, err := a.catalog.WebsiteBySlug(r.Slug)
		if err != nil {
			return nil, err
		}
		return newWebsitePage(a, w), nil
	case routeCreator:
		c, err := a.catalog.CreatorBySlug(r.Slug)
		if err != nil {
			return nil, err
		}
		return newCreatorPage(a, c), nil
	case routeBookmarks:
		return newBookmarksPage(a), nil
	case routeSignIn:
		return newSignInPage(a, r), nil
	case routeSearch:
		return newSearchPage(), nil
	}
	return nil, errors.New("unknown page " + string(r.Kind))
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// bindings held by open widgets come first
	if a.keys.Dispatch(msg) {
		return nil
	}
	if a.menu.IsOpen() {
		_, cmd := a.menu.Update(msg)
		return cmd
	}
	if mp, ok := a.page.(modalPage); ok && mp.Modal().IsOpen() {
		if msg.Type == tea.KeyCtrlC {
			a.quitting = true
			return nil
		}
		_, cmd := mp.Modal().Update(msg)
		return cmd
	}
	scope := a.page.Route().scope()
	if action, ok := a.keys.Action(msg, scope); ok {
		if cmd, handled := a.globalAction(action); handled {
			return cmd
		}
		if handled, cmd := a.page.Action(a, action); handled {
			return cmd
		}
	}
	if handled, cmd := a.page.Update(a, msg); handled {
		return cmd
	}
	if _, ok := a.page.(inputPage); ok {
		return nil
	}
	return a.scroll(msg.String())
}

func (a *App) globalAction(action string) (tea.Cmd, bool) {
	switch action {
	case keys.ActionQuit:
		a.quitting = true
		return nil, true
	case keys.ActionBack:
		return a.back(), true
	case keys.ActionWebsites:
		return a.navigate(Route{Kind: routeWebsites}, true), true
	case keys.ActionCreators:
		return a.navigate(Route{Kind: routeCreators}, true), true
	case keys.ActionBookmarks:
		return a.navigate(Route{Kind: routeBookmarks}, true), true
	case keys.ActionSearch:
		return a.navigate(Route{Kind: routeSearch}, true), true
	case keys.ActionSignIn:
		if a.menu.User() != nil {
			return statusCmd("already signed in as " + a.menu.User().Name()), true
		}
		return a.navigate(Route{Kind: routeSignIn}, true), true
	case keys.ActionPreviewMode:
		return a.switchPreviewMode(), true
	case keys.ActionMenu:
		if a.menu.User() == nil {
			return statusCmd("sign in to open the account menu"), true
		}
		a.menu.ToggleMenu()
		return nil, true
	}
	return nil, false
}

// switchPreviewMode flips preview.mode and writes the config. The running
// app keeps its current host until restart.
func (a *App) switchPreviewMode() tea.Cmd {
	if a.cfg.Preview.Mode == config.PreviewSnapshot {
		a.cfg.Preview.Mode = config.PreviewLive
	} else {
		a.cfg.Preview.Mode = config.PreviewSnapshot
	}
	cfg, save, log := a.cfg, a.save, a.log
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			log.Warn("save config failed", "err", err)
			return errMsg{fmt.Errorf("save config: %w", err)}
		}
		return statusMsg{text: "preview mode " + cfg.Preview.Mode + " saved to config (restart to apply)"}
	}
}

func (a *App) scroll(k string) tea.Cmd {
	if a.effects.scrollLocked() {
		return nil
	}
	switch k {
	case "pgdown", "ctrl+d", " ":
		a.viewport.HalfViewDown()
	case "pgup", "ctrl+u":
		a.viewport.HalfViewUp()
	case "home", "g":
		a.viewport.GotoTop()
	case "end", "G":
		a.viewport.GotoBottom()
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !a.effects.scrollLocked() && !a.menu.IsOpen() {
			a.viewport.LineUp(3)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if !a.effects.scrollLocked() && !a.menu.IsOpen() {
			a.viewport.LineDown(3)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	if a.menu.IsOpen() {
		if a.menuRect.Contains(msg.X, msg.Y) {
			// one border row above the first item
			return a.menu.Choose(msg.Y - a.menuRect.Y - 1)
		}
		a.menu.CaptureClick()
		return nil
	}
	if mp, ok := a.page.(modalPage); ok && mp.Modal().IsOpen() {
		if !a.modalRect.Contains(msg.X, msg.Y) {
			mp.Modal().BackdropClick()
		}
		return nil
	}
	if msg.Y == 0 {
		for _, z := range a.navZones {
			if msg.X >= z.start && msg.X < z.end {
				return z.click(a)
			}
		}
	}
	return nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return a.frame
}

// render lays out the whole screen and records the hit areas the mouse
// handler needs.
func (a *App) render() {
	w, h := max(a.width, 20), max(a.height, 6)
	nav := a.renderNavbar(w)
	status := a.renderStatus(w)
	footer := a.renderFooter(w)
	bodyH := max(1, h-lipgloss.Height(nav)-2)

	a.viewport.Width, a.viewport.Height = w, bodyH
	a.viewport.SetContent(wrap(a.page.View(a), w-1))
	screen := strings.Join([]string{nav, a.viewport.View(), status, footer}, "\n")

	a.modalRect, a.menuRect = overlay.Rect{}, overlay.Rect{}
	if mp, ok := a.page.(modalPage); ok && mp.Modal().IsOpen() {
		cardW := min(w-8, 72)
		screen, a.modalRect = overlay.Render(screen, modalView(a, mp.Modal(), cardW), a.theme.card, overlay.Center, w, h)
	}
	if a.menu.IsOpen() {
		screen, a.menuRect = overlay.Render(screen, a.renderMenu(), a.theme.menu, overlay.TopRight, w, h)
	}
	a.frame = screen
}

func (a *App) renderStatus(width int) string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return bar(a.theme.statusErr, width, msg)
	}
	return bar(a.theme.status, width, msg)
}

func bar(style lipgloss.Style, width int, text string) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	return style.Width(width).Render(line)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
