package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/showcase/internal/widget"
)

// page is one screen below the navbar. Pages are built on navigation and torn
// down when the user leaves them.
type page interface {
	Route() Route
	Init(a *App) tea.Cmd
	// Action handles a static key action for the page's scope.
	Action(a *App, action string) (bool, tea.Cmd)
	// Update handles every other message; it reports whether the page consumed it.
	Update(a *App, msg tea.Msg) (bool, tea.Cmd)
	View(a *App) string
	Teardown()
}

// modalPage is a page that can show the preview modal.
type modalPage interface {
	Modal() *widget.Modal
}

// inputPage is a page whose unbound keys go to a text input.
type inputPage interface {
	Input() *textinput.Model
}

// sessionPage is a page that is rebuilt when the signed-in user changes.
type sessionPage interface {
	sessionBound()
}

func navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

// keyFor returns the first key bound to action in scope.
func keyFor(a *App, action, scope string) (string, bool) {
	for _, b := range a.keys.ForScope(scope) {
		if b.Action == action && len(b.Keys) > 0 {
			return b.Keys[0], true
		}
	}
	return "", false
}

// move steps a cursor through n rows, wrapping at both ends.
func move(cur, n, delta int) int {
	if n == 0 {
		return 0
	}
	return ((cur+delta)%n + n) % n
}

func marker(a *App, selected bool, text string) string {
	if selected {
		return a.theme.selected.Render("▸ " + text)
	}
	return "  " + text
}

func section(a *App, title string, body ...string) string {
	lines := append([]string{a.theme.heading.Render(title)}, body...)
	return strings.Join(lines, "\n")
}

func rows(a *App, label string, pairs ...[2]string) string {
	var b strings.Builder
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", a.theme.muted.Render(fmt.Sprintf("%-10s", p[0])), p[1])
	}
	if b.Len() == 0 {
		return ""
	}
	return section(a, label, strings.TrimRight(b.String(), "\n"))
}
