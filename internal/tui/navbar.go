package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/showcase/internal/widget"
)

// zone is a clickable span of the navbar row.
type zone struct {
	start, end int
	click      func(a *App) tea.Cmd
}

func goTo(r Route) func(a *App) tea.Cmd {
	return func(a *App) tea.Cmd { return a.navigate(r, true) }
}

func (a *App) renderNavbar(width int) string {
	a.navZones = a.navZones[:0]
	x := 0
	var left []string
	add := func(text string, style lipgloss.Style, click func(*App) tea.Cmd) {
		cell := style.Render(text)
		w := lipgloss.Width(cell)
		if click != nil {
			a.navZones = append(a.navZones, zone{start: x, end: x + w, click: click})
		}
		left = append(left, cell)
		x += w
	}
	brand := a.theme.navActive.Foreground(a.theme.accent)
	add("showcase", brand, goTo(Route{Kind: routeWebsites}))
	current := a.page.Route().section()
	for _, tab := range []struct {
		label string
		kind  routeKind
	}{
		{"Websites", routeWebsites},
		{"Creators", routeCreators},
		{"Bookmarks", routeBookmarks},
	} {
		style := a.theme.navItem
		if tab.kind == current {
			style = a.theme.navActive
		}
		add(tab.label, style, goTo(Route{Kind: tab.kind}))
	}
	add("/ Search", a.theme.navItem, goTo(Route{Kind: routeSearch}))

	var right []string
	var rightZones []zone
	rx := 0
	addRight := func(text string, style lipgloss.Style, click func(*App) tea.Cmd) {
		cell := style.Render(text)
		w := lipgloss.Width(cell)
		if click != nil {
			rightZones = append(rightZones, zone{start: rx, end: rx + w, click: click})
		}
		right = append(right, cell)
		rx += w
	}
	switch u := a.menu.User(); {
	case a.menu.IsLoading():
		addRight(a.spinner.View(), a.theme.navItem, nil)
	case u != nil:
		label := u.Name() + " ▾"
		if a.menu.IsOpen() {
			label = u.Name() + " ▴"
		}
		addRight(label, a.theme.navActive, func(a *App) tea.Cmd {
			a.menu.ToggleMenu()
			return nil
		})
	default:
		addRight("Sign in", a.theme.navItem, goTo(Route{Kind: routeSignIn}))
		addRight("Create account", a.theme.navActive, goTo(Route{Kind: routeSignIn, Slug: signUpSlug}))
	}

	l, r := strings.Join(left, ""), strings.Join(right, "")
	gap := width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		// narrow terminal: the account side wins
		l = ansi.Truncate(l, max(0, width-lipgloss.Width(r)-1), "")
		gap = max(0, width-lipgloss.Width(l)-lipgloss.Width(r))
		a.navZones = clip(a.navZones, lipgloss.Width(l))
	}
	offset := lipgloss.Width(l) + gap
	for _, z := range rightZones {
		z.start += offset
		z.end += offset
		a.navZones = append(a.navZones, z)
	}
	return ansi.Truncate(l+a.theme.navBar.Render(strings.Repeat(" ", gap))+r, width, "")
}

func clip(zones []zone, limit int) []zone {
	out := zones[:0]
	for _, z := range zones {
		if z.start >= limit {
			continue
		}
		z.end = min(z.end, limit)
		out = append(out, z)
	}
	return out
}

func (a *App) renderMenu() string {
	lines := make([]string, 0, len(a.menu.Items))
	for i, item := range a.menu.Items {
		lines = append(lines, marker(a, i == a.menu.Cursor(), string(item)))
	}
	if u := a.menu.User(); u != nil {
		lines = append(lines, a.theme.muted.Render(u.Email))
	}
	return strings.Join(lines, "\n")
}

// renderFooter lists the shortcuts for the current scope.
func (a *App) renderFooter(width int) string {
	var bindings []key.Binding
	switch mp, ok := a.page.(modalPage); {
	case a.menu.IsOpen():
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	case ok && mp.Modal().IsOpen():
		m := mp.Modal()
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
			m.Keys.Reload,
			m.Keys.External,
		}
	default:
		for _, b := range a.keys.ForScope(a.page.Route().scope()) {
			if len(b.Keys) == 0 || b.Description == "" {
				continue
			}
			bindings = append(bindings, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)))
		}
	}
	space := a.theme.footer.Render(" ")
	parts := make([]string, 0, len(bindings))
	seen := map[string]bool{}
	for _, kb := range bindings {
		h := kb.Help()
		if h.Key == "" || seen[h.Desc] {
			continue
		}
		seen[h.Desc] = true
		parts = append(parts, a.theme.key.Render(h.Key)+space+a.theme.keyDesc.Render(h.Desc))
	}
	line := strings.Join(parts, a.theme.footer.Render("  "))
	if line == "" {
		line = a.theme.keyDesc.Render("No shortcuts")
	}
	return bar(a.theme.footer, width, line)
}

var _ widget.Effects = (*effects)(nil)
