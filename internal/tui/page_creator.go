package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
	"github.com/jask/showcase/internal/widget"
)

const (
	productLimit = 3
	othersLimit  = 3
)

type creatorPage struct {
	creator  directory.Creator
	others   []directory.Creator
	cur      int
	carousel *widget.Carousel
	modal    *widget.Modal
}

func newCreatorPage(a *App, c directory.Creator) *creatorPage {
	return &creatorPage{
		creator:  c,
		others:   a.catalog.OtherCreators(c, othersLimit),
		carousel: widget.NewCarousel(c.Gallery),
		modal:    widget.NewModal(a.ctx, a.preview, a.effects, a.cfg.Preview.Timeout),
	}
}

func (p *creatorPage) Route() Route         { return Route{Kind: routeCreator, Slug: p.creator.Slug} }
func (p *creatorPage) Modal() *widget.Modal { return p.modal }
func (p *creatorPage) Init(*App) tea.Cmd    { return nil }
func (p *creatorPage) Teardown()            { p.modal.Teardown() }

func (p *creatorPage) Action(_ *App, action string) (bool, tea.Cmd) {
	switch action {
	case keys.ActionPreview:
		if p.creator.WebsiteURL == "" {
			return true, statusCmd("No website listed for " + p.creator.Name)
		}
		return true, p.modal.Open(p.creator.WebsiteURL, p.creator.Name)
	case keys.ActionNext:
		p.cur = move(p.cur, len(p.others), 1)
	case keys.ActionPrev:
		p.cur = move(p.cur, len(p.others), -1)
	case keys.ActionOpen:
		if len(p.others) == 0 {
			return true, nil
		}
		return true, navigate(Route{Kind: routeCreator, Slug: p.others[p.cur].Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *creatorPage) Update(a *App, msg tea.Msg) (bool, tea.Cmd) {
	if handled, cmd := p.modal.Update(msg); handled {
		if _, ok := msg.(widget.ContentReadyMsg); ok && p.modal.Err() != nil {
			a.log.Warn("preview failed", "url", p.modal.URL(), "err", p.modal.Err())
		}
		return true, cmd
	}
	return p.carousel.Update(msg), nil
}

func (p *creatorPage) View(a *App) string {
	c := p.creator
	parts := []string{
		a.theme.title.Render(c.Name) + "  " + a.theme.chip.Render(c.Category),
		a.theme.muted.Render(strings.Join(nonEmpty(c.Role, c.Location), " • ")),
	}
	if c.ShortDescription != "" {
		parts = append(parts, "", c.ShortDescription)
	}
	if socials := c.SocialLinks(); len(socials) > 0 {
		list := make([]string, 0, len(socials))
		for _, s := range socials {
			list = append(list, fmt.Sprintf("%s %s", a.theme.muted.Render(s.Label+":"), s.URL))
		}
		parts = append(parts, "", strings.Join(list, "\n"))
	}
	if c.WebsiteURL != "" {
		parts = append(parts, "", a.theme.button.Render("p Visit "+widget.DisplayURL(c.WebsiteURL)))
	}
	parts = append(parts, "", p.galleryView(a))
	if stats := c.Stats(); len(stats) > 0 {
		tiles := make([]string, 0, len(stats))
		for _, s := range stats {
			tiles = append(tiles, a.theme.tile.Render(a.theme.title.Render(s.Value)+"\n"+a.theme.muted.Render(s.Label)))
		}
		parts = append(parts, "", lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	if c.NotableMetrics != "" {
		var metrics []string
		for _, m := range strings.Split(c.NotableMetrics, "|") {
			if m = strings.TrimSpace(m); m != "" {
				metrics = append(metrics, "• "+m)
			}
		}
		parts = append(parts, "", section(a, "Notable", metrics...))
	}
	if c.Bio != "" {
		parts = append(parts, "", section(a, "About", c.Bio))
	}
	for _, group := range []struct {
		title string
		items []string
	}{
		{"Target Audience", c.TargetAudience},
		{"Use Cases", c.UseCases},
		{"Revenue Streams", c.MonetizationMethods},
	} {
		if len(group.items) == 0 {
			continue
		}
		chips := make([]string, 0, len(group.items))
		for _, it := range group.items {
			chips = append(chips, a.theme.chip.Render(it))
		}
		parts = append(parts, "", section(a, group.title, strings.Join(chips, " ")))
	}
	if products := c.TopProducts(productLimit); len(products) > 0 {
		list := make([]string, 0, len(products))
		for _, pr := range products {
			line := pr.Name
			if pr.Pricing != "" {
				line += "  " + a.theme.muted.Render(pr.Pricing)
			}
			list = append(list, line)
			if pr.ShortDescription != "" {
				list = append(list, "  "+a.theme.muted.Render(pr.ShortDescription))
			}
		}
		parts = append(parts, "", section(a, "Products", list...))
	}
	if n := len(c.FeaturedTweets); n > 0 {
		parts = append(parts, "", section(a, "Featured Content",
			a.theme.muted.Render(fmt.Sprintf("%d featured posts by %s", n, c.Handle()))))
	}
	if len(p.others) > 0 {
		list := make([]string, 0, len(p.others))
		for i, o := range p.others {
			line := o.Name
			if head := o.NotableHeadline(); head != "" {
				line += "  " + a.theme.muted.Render(head)
			}
			list = append(list, marker(a, i == p.cur, line))
		}
		parts = append(parts, "", section(a, "More Creators", list...))
	}
	return strings.Join(parts, "\n")
}

func (p *creatorPage) galleryView(a *App) string {
	src, ok := p.carousel.Current()
	if !ok {
		return section(a, "Gallery", a.theme.muted.Render("No images yet."))
	}
	lines := []string{
		a.theme.tile.Render(fmt.Sprintf("%s\n%s", p.carousel.AltText(p.creator.Name), a.theme.muted.Render(src))),
	}
	if p.carousel.ShowControls() {
		dots := make([]string, 0, p.carousel.Len())
		for _, on := range p.carousel.Indicators() {
			if on {
				dots = append(dots, a.theme.selected.Render("●"))
			} else {
				dots = append(dots, a.theme.muted.Render("○"))
			}
		}
		lines = append(lines, "‹ h  "+strings.Join(dots, " ")+"  l ›")
	}
	return section(a, "Gallery", lines...)
}

func nonEmpty(vals ...string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
