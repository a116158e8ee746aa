package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
)

type searchPage struct {
	input textinput.Model
	query string
	hits  []directory.Hit
	cur   int
}

func newSearchPage() *searchPage {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "search websites and creators"
	in.Focus()
	return &searchPage{input: in}
}

func (p *searchPage) Route() Route            { return Route{Kind: routeSearch} }
func (p *searchPage) Input() *textinput.Model { return &p.input }
func (p *searchPage) Init(*App) tea.Cmd       { return textinput.Blink }
func (p *searchPage) Teardown()               { p.input.Blur() }

func (p *searchPage) Action(_ *App, action string) (bool, tea.Cmd) {
	switch action {
	case keys.ActionNext:
		p.cur = move(p.cur, len(p.hits), 1)
	case keys.ActionPrev:
		p.cur = move(p.cur, len(p.hits), -1)
	case keys.ActionOpen:
		if len(p.hits) == 0 {
			return true, nil
		}
		h := p.hits[p.cur]
		kind := routeWebsite
		if h.Kind == directory.HitCreator {
			kind = routeCreator
		}
		return true, navigate(Route{Kind: kind, Slug: h.Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *searchPage) Update(a *App, msg tea.Msg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if q := strings.TrimSpace(p.input.Value()); q != p.query {
		p.query = q
		p.hits = a.catalog.Search(q)
		p.cur = 0
	}
	_, isKey := msg.(tea.KeyMsg)
	return isKey || cmd != nil, cmd
}

func (p *searchPage) View(a *App) string {
	lines := []string{a.theme.title.Render("Search"), "", p.input.View(), ""}
	switch {
	case p.query == "":
		lines = append(lines, a.theme.muted.Render("Type to search. Typos are forgiven."))
	case len(p.hits) == 0:
		lines = append(lines, a.theme.muted.Render("No matches for "+p.query+"."))
	default:
		for i, h := range p.hits {
			lines = append(lines, marker(a, i == p.cur, h.Title+"  "+a.theme.muted.Render(string(h.Kind))))
		}
	}
	return strings.Join(lines, "\n")
}
