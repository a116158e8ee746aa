package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/auth"
	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/keys"
)

// signUpSlug marks the sign-in route opened from "Create account".
const signUpSlug = "new"

type signInPage struct {
	id    uint64
	route Route
	input textinput.Model
	busy  bool
	err   error
}

func newSignInPage(a *App, r Route) *signInPage {
	in := textinput.New()
	in.Prompt = "Email: "
	in.Placeholder = database.DemoEmail
	in.CharLimit = 254
	in.Focus()
	return &signInPage{id: a.nextPageID(), route: r, input: in}
}

func (p *signInPage) Route() Route            { return p.route }
func (p *signInPage) Input() *textinput.Model { return &p.input }
func (p *signInPage) Init(*App) tea.Cmd       { return textinput.Blink }
func (p *signInPage) Teardown()               { p.input.Blur() }

func (p *signInPage) next() Route {
	if p.route.Next != nil {
		return *p.route.Next
	}
	return Route{Kind: routeWebsites}
}

func (p *signInPage) Action(a *App, action string) (bool, tea.Cmd) {
	if action != keys.ActionSubmit {
		return false, nil
	}
	if p.busy {
		return true, nil
	}
	email := strings.TrimSpace(p.input.Value())
	if email == "" {
		email = p.input.Placeholder
	}
	p.busy, p.err = true, nil
	id, ctx, session, timeout, next := p.id, a.ctx, a.session, a.cfg.Storage.Timeout, p.next()
	return true, func() tea.Msg {
		ctx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		u, err := session.SignIn(ctx, email)
		return signedInMsg{page: id, user: u, next: next, err: err}
	}
}

func (p *signInPage) Update(a *App, msg tea.Msg) (bool, tea.Cmd) {
	if m, ok := msg.(signedInMsg); ok {
		if m.page != p.id {
			return false, nil
		}
		p.busy = false
		if m.err != nil {
			p.err = m.err
			a.log.Info("sign in rejected", "err", m.err)
			return true, nil
		}
		a.log.Info("signed in", "user_id", m.user.ID)
		return true, tea.Batch(statusCmd("Signed in as "+m.user.Name()), navigate(m.next))
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	_, isKey := msg.(tea.KeyMsg)
	return isKey || cmd != nil, cmd
}

func (p *signInPage) View(a *App) string {
	title := "Sign in"
	if p.route.Slug == signUpSlug {
		title = "Create account"
	}
	lines := []string{a.theme.title.Render(title), ""}
	if p.route.Next != nil && p.route.Next.Kind == routeWebsite {
		lines = append(lines, a.theme.muted.Render("Sign in to bookmark websites."), "")
	}
	lines = append(lines, p.input.View(), "")
	switch {
	case p.busy:
		lines = append(lines, a.spinner.View()+" Signing in…")
	case errors.Is(p.err, auth.ErrInvalidEmail):
		lines = append(lines, a.theme.statusErr.Render("That does not look like an email address."))
	case p.err != nil:
		lines = append(lines, a.theme.statusErr.Render("Sign in failed: "+p.err.Error()))
	default:
		lines = append(lines, a.theme.muted.Render("Accounts are created on first sign in. enter to continue · esc to go back"))
	}
	return strings.Join(lines, "\n")
}
