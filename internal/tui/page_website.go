package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/keys"
	"github.com/jask/showcase/internal/widget"
)

const relatedLimit = 4

type websitePage struct {
	site     directory.Website
	related  []directory.Website
	cur      int
	bookmark *widget.Bookmark
	modal    *widget.Modal
}

func newWebsitePage(a *App, site directory.Website) *websitePage {
	return &websitePage{
		site:     site,
		related:  a.catalog.RelatedWebsites(site, relatedLimit),
		bookmark: widget.NewBookmark(a.ctx, a.bookmarks, a.session, site.Slug, a.cfg.Storage.Timeout),
		modal:    widget.NewModal(a.ctx, a.preview, a.effects, a.cfg.Preview.Timeout),
	}
}

func (p *websitePage) Route() Route         { return Route{Kind: routeWebsite, Slug: p.site.Slug} }
func (p *websitePage) Modal() *widget.Modal { return p.modal }
func (p *websitePage) Init(*App) tea.Cmd    { return p.bookmark.Init() }
func (p *websitePage) sessionBound()        {}

func (p *websitePage) Teardown() {
	p.bookmark.Teardown()
	p.modal.Teardown()
}

func (p *websitePage) Action(_ *App, action string) (bool, tea.Cmd) {
	switch action {
	case keys.ActionBookmark:
		return true, p.bookmark.Toggle()
	case keys.ActionPreview:
		return true, p.modal.Open(p.site.URL, p.site.Title)
	case keys.ActionNext:
		p.cur = move(p.cur, len(p.related), 1)
	case keys.ActionPrev:
		p.cur = move(p.cur, len(p.related), -1)
	case keys.ActionOpen:
		if len(p.related) == 0 {
			return true, nil
		}
		return true, navigate(Route{Kind: routeWebsite, Slug: p.related[p.cur].Slug})
	default:
		return false, nil
	}
	return true, nil
}

func (p *websitePage) Update(a *App, msg tea.Msg) (bool, tea.Cmd) {
	if p.bookmark.Update(msg) {
		if err := resultErr(msg); err != nil {
			a.log.Warn("bookmark round trip failed", "website", p.site.Slug, "err", err)
			return true, errCmd(err)
		}
		return true, nil
	}
	if handled, cmd := p.modal.Update(msg); handled {
		if _, ok := msg.(widget.ContentReadyMsg); ok && p.modal.Err() != nil {
			a.log.Warn("preview failed", "url", p.modal.URL(), "err", p.modal.Err())
		}
		return true, cmd
	}
	return false, nil
}

func resultErr(msg tea.Msg) error {
	switch m := msg.(type) {
	case widget.BookmarkCheckedMsg:
		return m.Err
	case widget.BookmarkToggledMsg:
		return m.Err
	}
	return nil
}

func (p *websitePage) bookmarkButton(a *App) string {
	label := p.bookmark.Label()
	if p.bookmark.Busy() {
		label = a.spinner.View() + " " + label
	}
	if p.bookmark.Status() == widget.Bookmarked {
		return a.theme.buttonOn.Render("★ " + label)
	}
	return a.theme.button.Render("☆ " + label)
}

func (p *websitePage) View(a *App) string {
	w := p.site
	parts := []string{
		a.theme.title.Render(w.Title),
		a.theme.muted.Render(w.Tagline),
		a.theme.muted.Render(widget.DisplayURL(w.URL)),
		"",
		p.bookmarkButton(a) + "  " + a.theme.button.Render("p Visit website"),
	}
	if w.Description != "" {
		parts = append(parts, "", w.Description)
	}
	if info := rows(a, "Details",
		[2]string{"Category", w.Category},
		[2]string{"Framework", w.Framework},
		[2]string{"CMS", w.CMS},
		[2]string{"Launched", w.LaunchDate},
	); info != "" {
		parts = append(parts, "", info)
	}
	if shots := rows(a, "Screenshots",
		[2]string{"Desktop", w.Image},
		[2]string{"Mobile", w.MobileImage},
	); shots != "" {
		parts = append(parts, "", shots)
	}
	if len(p.related) > 0 {
		list := make([]string, 0, len(p.related))
		for i, r := range p.related {
			list = append(list, marker(a, i == p.cur, r.Title+"  "+a.theme.muted.Render(r.Tagline)))
		}
		parts = append(parts, "", section(a, "More in "+w.Category, list...))
	}
	return strings.Join(parts, "\n")
}

// modalView renders the preview card body.
func modalView(a *App, m *widget.Modal, width int) string {
	st := m.State()
	lines := []string{
		a.theme.title.Render(m.Title()),
		a.theme.muted.Render(widget.DisplayURL(m.URL())),
		"",
	}
	c := m.Content()
	switch {
	case st.IsContentLoading:
		lines = append(lines, a.spinner.View()+" Loading preview…")
	case m.Err() != nil:
		lines = append(lines, a.theme.statusErr.Render(previewError(m.Err())))
	default:
		if c.Title != "" && c.Title != m.Title() {
			lines = append(lines, a.theme.heading.Render(c.Title))
		}
		if c.Summary != "" {
			lines = append(lines, c.Summary, "")
		}
		for _, img := range c.Images {
			lines = append(lines, a.theme.muted.Render("image: "+img))
		}
		lines = append(lines, c.Lines...)
	}
	lines = append(lines, "", a.theme.muted.Render("esc close · r reload · o open in browser"))
	body := strings.Join(lines, "\n")
	if width > 0 {
		body = wrap(body, width)
	}
	return body
}

func previewError(err error) string {
	var unwrapped interface{ Timeout() bool }
	if errors.As(err, &unwrapped) && unwrapped.Timeout() {
		return "The page took too long to respond."
	}
	return fmt.Sprintf("Preview unavailable: %v", err)
}
