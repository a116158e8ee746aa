package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
)

type websitesPage struct {
	sites []directory.Website
	cur   int
}

func newWebsitesPage(a *App) *websitesPage {
	return &websitesPage{sites: a.catalog.Websites()}
}

func (p *websitesPage) Route() Route      { return Route{Kind: routeWebsites} }
func (p *websitesPage) Init(*App) tea.Cmd { return nil }
func (p *websitesPage) Teardown()         {}

func (p *websitesPage) Update(*App, tea.Msg) (bool, tea.Cmd) { return false, nil }

func (p *websitesPage) Action(_ *App, action string) (bool, tea.Cmd) {
	switch action {
	case keys.ActionNext:
		p.cur = move(p.cur, len(p.sites), 1)
	case keys.ActionPrev:
		p.cur = move(p.cur, len(p.sites), -1)
	case keys.ActionOpen:
		if len(p.sites) == 0 {
			return true, nil
		}
		return true, navigate(Route{Kind: routeWebsite, Slug: p.sites[p.cur].Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *websitesPage) View(a *App) string {
	lines := []string{
		a.theme.title.Render("Websites"),
		a.theme.muted.Render("Categories: " + strings.Join(a.catalog.Categories(), " · ")),
	}
	if featured := a.catalog.FeaturedWebsites(); len(featured) > 0 {
		names := make([]string, 0, len(featured))
		for _, w := range featured {
			names = append(names, w.Title)
		}
		lines = append(lines, a.theme.muted.Render("Featured: "+strings.Join(names, ", ")))
	}
	lines = append(lines, "")
	if len(p.sites) == 0 {
		return strings.Join(append(lines, a.theme.muted.Render("No websites listed yet.")), "\n")
	}
	for i, w := range p.sites {
		head := w.Title
		if w.Featured {
			head += " ★"
		}
		lines = append(lines,
			marker(a, i == p.cur, head+"  "+a.theme.muted.Render(w.Category)),
			"    "+a.theme.muted.Render(w.Tagline),
		)
	}
	return strings.Join(lines, "\n")
}

type creatorsPage struct {
	creators []directory.Creator
	cur      int
}

func newCreatorsPage(a *App) *creatorsPage {
	return &creatorsPage{creators: a.catalog.Creators()}
}

func (p *creatorsPage) Route() Route      { return Route{Kind: routeCreators} }
func (p *creatorsPage) Init(*App) tea.Cmd { return nil }
func (p *creatorsPage) Teardown()         {}

func (p *creatorsPage) Update(*App, tea.Msg) (bool, tea.Cmd) { return false, nil }

func (p *creatorsPage) Action(_ *App, action string) (bool, tea.Cmd) {
	switch action {
	case keys.ActionNext:
		p.cur = move(p.cur, len(p.creators), 1)
	case keys.ActionPrev:
		p.cur = move(p.cur, len(p.creators), -1)
	case keys.ActionOpen:
		if len(p.creators) == 0 {
			return true, nil
		}
		return true, navigate(Route{Kind: routeCreator, Slug: p.creators[p.cur].Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *creatorsPage) View(a *App) string {
	lines := []string{a.theme.title.Render("Creators"), ""}
	if len(p.creators) == 0 {
		return strings.Join(append(lines, a.theme.muted.Render("No creators listed yet.")), "\n")
	}
	for i, c := range p.creators {
		lines = append(lines,
			marker(a, i == p.cur, fmt.Sprintf("%s  %s", c.Name, a.theme.muted.Render(c.Category))),
			"    "+a.theme.muted.Render(c.ShortDescription),
		)
	}
	return strings.Join(lines, "\n")
}
