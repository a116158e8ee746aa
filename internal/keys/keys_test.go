package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScopeMatch(t *testing.T) {
	reg := NewRegistry(Defaults())
	if !reg.IsAction(press("q"), ActionQuit, ScopeWebsites) {
		t.Fatalf("expected q to quit on the websites page")
	}
	if reg.IsAction(press("q"), ActionQuit, ScopeSearch) {
		t.Fatalf("q must stay typeable on the search page")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit, ScopeSignIn) {
		t.Fatalf("expected ctrl+c to quit everywhere")
	}
	action, ok := reg.Action(press("m"), ScopeWebsite)
	require.True(t, ok)
	require.Equal(t, ActionBookmark, action)
	_, ok = reg.Action(press("m"), ScopeCreators)
	require.False(t, ok)
}

func TestBindLatestWinsAndRelease(t *testing.T) {
	reg := NewRegistry(nil)
	var calls []string
	releaseOuter := reg.Bind([]string{"esc"}, func() { calls = append(calls, "outer") })
	releaseInner := reg.Bind([]string{"ESC"}, func() { calls = append(calls, "inner") })
	require.Equal(t, 2, reg.Bound())

	require.True(t, reg.Dispatch(tea.KeyMsg{Type: tea.KeyEsc}))
	releaseInner()
	releaseInner()
	require.Equal(t, 1, reg.Bound())
	require.True(t, reg.Dispatch(tea.KeyMsg{Type: tea.KeyEsc}))
	releaseOuter()
	require.False(t, reg.Dispatch(tea.KeyMsg{Type: tea.KeyEsc}))
	require.Equal(t, []string{"inner", "outer"}, calls)
}

func TestApplyOverrides(t *testing.T) {
	out := ApplyOverrides(Defaults(), map[string][]string{"bookmark": {"b"}, "preview": nil})
	reg := NewRegistry(out)
	require.True(t, reg.IsAction(press("b"), ActionBookmark, ScopeWebsite))
	require.False(t, reg.IsAction(press("m"), ActionBookmark, ScopeWebsite))
	require.True(t, reg.IsAction(press("p"), ActionPreview, ScopeWebsite))
}
