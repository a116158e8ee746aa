package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
	"github.com/jask/showcase/internal/widget"
)

type bookmarksPage struct {
	id      uint64
	loading bool
	owner   *widget.User
	sites   []directory.Website
	missing int
	table   table.Model
	err     error
}

func newBookmarksPage(a *App) *bookmarksPage {
	return &bookmarksPage{id: a.nextPageID(), loading: true}
}

func (p *bookmarksPage) Route() Route  { return Route{Kind: routeBookmarks} }
func (p *bookmarksPage) Teardown()     {}
func (p *bookmarksPage) sessionBound() {}

func (p *bookmarksPage) Init(a *App) tea.Cmd {
	id, ctx, session, store, timeout := p.id, a.ctx, a.session, a.bookmarks, a.cfg.Storage.Timeout
	return func() tea.Msg {
		ctx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		owner, err := session.CurrentUser(ctx)
		if err != nil {
			return bookmarksLoadedMsg{page: id, err: fmt.Errorf("current user: %w", err)}
		}
		if owner == nil {
			return bookmarksLoadedMsg{page: id}
		}
		recs, err := store.ListByUser(ctx, owner.ID)
		if err != nil {
			err = fmt.Errorf("list bookmarks: %w", err)
		}
		return bookmarksLoadedMsg{page: id, owner: owner, records: recs, err: err}
	}
}

func (p *bookmarksPage) Update(a *App, msg tea.Msg) (bool, tea.Cmd) {
	m, ok := msg.(bookmarksLoadedMsg)
	if !ok || m.page != p.id {
		return false, nil
	}
	p.loading = false
	p.owner = m.owner
	p.err = m.err
	if m.err != nil {
		a.log.Warn("load bookmarks failed", "err", m.err)
		return true, errCmd(m.err)
	}
	p.sites, p.missing = p.sites[:0], 0
	for _, rec := range m.records {
		w, err := a.catalog.WebsiteBySlug(rec.SubjectID)
		if errors.Is(err, directory.ErrNotFound) {
			p.missing++
			continue
		}
		p.sites = append(p.sites, w)
	}
	p.table = p.buildTable()
	return true, nil
}

func (p *bookmarksPage) buildTable() table.Model {
	cols := []table.Column{
		{Title: "Website", Width: 22},
		{Title: "Category", Width: 12},
		{Title: "URL", Width: 28},
	}
	rows := make([]table.Row, 0, len(p.sites))
	for _, w := range p.sites {
		rows = append(rows, table.Row{w.Title, w.Category, widget.DisplayURL(w.URL)})
	}
	return table.New(table.WithColumns(cols), table.WithRows(rows), table.WithFocused(true), table.WithHeight(min(len(rows)+1, 12)))
}

func (p *bookmarksPage) Action(_ *App, action string) (bool, tea.Cmd) {
	if p.loading {
		return false, nil
	}
	if p.owner == nil {
		if action == keys.ActionOpen {
			return true, navigate(Route{Kind: routeSignIn, Next: &Route{Kind: routeBookmarks}})
		}
		return false, nil
	}
	switch action {
	case keys.ActionNext:
		p.table.MoveDown(1)
	case keys.ActionPrev:
		p.table.MoveUp(1)
	case keys.ActionOpen:
		if len(p.sites) == 0 {
			return true, nil
		}
		return true, navigate(Route{Kind: routeWebsite, Slug: p.sites[p.table.Cursor()].Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *bookmarksPage) View(a *App) string {
	lines := []string{a.theme.title.Render("Bookmarks"), ""}
	switch {
	case p.loading:
		lines = append(lines, a.spinner.View()+" Loading bookmarks…")
	case p.err != nil:
		lines = append(lines, a.theme.statusErr.Render("Could not load bookmarks."))
	case p.owner == nil:
		lines = append(lines, "Sign in to see your bookmarks.", a.theme.muted.Render("enter sign in"))
	case len(p.sites) == 0:
		hint := "Nothing bookmarked yet."
		if k, ok := keyFor(a, keys.ActionBookmark, keys.ScopeWebsite); ok {
			hint += " Press " + k + " on a website to save it."
		}
		lines = append(lines, a.theme.muted.Render(hint))
	default:
		lines = append(lines, p.table.View())
	}
	if p.missing > 0 {
		lines = append(lines, "", a.theme.muted.Render(fmt.Sprintf("%d bookmarked sites are no longer listed.", p.missing)))
	}
	return strings.Join(lines, "\n")
}
