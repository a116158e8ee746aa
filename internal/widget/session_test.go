package widget

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// mountMenu runs the initial fetch; the subscription wait is left pending.
func mountMenu(t *testing.T, src *fakeSession) *SessionMenu {
	t.Helper()
	m := NewSessionMenu(context.Background(), src)
	if m.Init() == nil {
		t.Fatalf("Init returned no command")
	}
	m.Update(SessionLoadedMsg{Menu: m.ID(), User: mustFetch(t, src)})
	return m
}

func mustFetch(t *testing.T, src *fakeSession) *User {
	t.Helper()
	u, err := src.CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestSessionMenuWithoutUserCannotOpen(t *testing.T) {
	m := mountMenu(t, newFakeSession(nil))
	m.ToggleMenu()
	if m.IsOpen() {
		t.Fatalf("menu opened without a user")
	}
	if m.IsLoading() {
		t.Fatalf("still loading after fetch")
	}
}

func TestSessionMenuToggleAndCaptureClick(t *testing.T) {
	m := mountMenu(t, newFakeSession(ada))
	m.ToggleMenu()
	if !m.IsOpen() {
		t.Fatalf("menu did not open")
	}
	if !m.CaptureClick() {
		t.Fatalf("click on capture layer not consumed")
	}
	if m.IsOpen() {
		t.Fatalf("capture click did not close the menu")
	}
	if m.CaptureClick() {
		t.Fatalf("closed menu consumed a click")
	}
}

func TestSessionMenuSignOutClosesRegardlessOfOutcome(t *testing.T) {
	src := newFakeSession(ada)
	src.signOutErr = errBoom
	m := mountMenu(t, src)
	m.ToggleMenu()
	cmd := m.SignOut()
	if m.IsOpen() {
		t.Fatalf("menu open while sign-out in flight")
	}
	m.Update(run(cmd))
	if m.IsOpen() || !errors.Is(m.Err(), errBoom) {
		t.Fatalf("open=%v err=%v", m.IsOpen(), m.Err())
	}
	if m.User() == nil {
		t.Fatalf("failed sign-out cleared the user; only the subscription may do that")
	}
}

func TestSessionMenuFollowsSubscription(t *testing.T) {
	src := newFakeSession(ada)
	m := NewSessionMenu(context.Background(), src)
	m.Init()
	if src.subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", src.subscribers())
	}
	m.Update(SessionLoadedMsg{Menu: m.ID(), User: ada})
	m.ToggleMenu()

	// sign-out notification clears the user and forces the menu shut
	src.set(nil)
	_, next := m.Update(run(m.waitForChange()))
	if m.User() != nil || m.IsOpen() {
		t.Fatalf("user=%v open=%v after sign-out notification", m.User(), m.IsOpen())
	}
	if next == nil {
		t.Fatalf("subscription wait not re-armed")
	}

	grace := &User{ID: "u2", Email: "grace@example.com"}
	src.set(grace)
	m.Update(run(next))
	if m.User() == nil || m.User().ID != "u2" {
		t.Fatalf("user = %v, want u2", m.User())
	}

	// a fetch that resolves after a notification is older and is ignored
	m.Update(SessionLoadedMsg{Menu: m.ID(), User: ada})
	if m.User().ID != "u2" {
		t.Fatalf("stale fetch overwrote newer notification")
	}

	m.Teardown()
	m.Teardown()
	if src.subscribers() != 0 {
		t.Fatalf("subscription leaked after teardown")
	}
	if msg := run(m.waitForChange()); msg != nil {
		t.Fatalf("wait after teardown returned %#v", msg)
	}
}

func TestSessionMenuNotificationsKeepNewest(t *testing.T) {
	src := newFakeSession(nil)
	m := NewSessionMenu(context.Background(), src)
	m.Init()
	src.set(ada)
	src.set(&User{ID: "u3"})
	msg := run(m.waitForChange()).(SessionChangedMsg)
	if msg.User == nil || msg.User.ID != "u3" {
		t.Fatalf("got %v, want newest notification u3", msg.User)
	}
}

func TestSessionMenuKeys(t *testing.T) {
	m := mountMenu(t, newFakeSession(ada))
	if handled, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown}); handled {
		t.Fatalf("closed menu consumed a key")
	}
	m.ToggleMenu()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Fatalf("cursor = %d", m.Cursor())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := run(cmd).(MenuSelectedMsg)
	if !ok || sel.Item != MenuBookmarks {
		t.Fatalf("selected %#v", sel)
	}
	if m.IsOpen() {
		t.Fatalf("menu still open after select")
	}

	m.ToggleMenu()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := run(cmd).(SignedOutMsg); !ok {
		t.Fatalf("sign out item did not sign out")
	}
}

func TestSessionMenuIgnoresOtherInstances(t *testing.T) {
	m := mountMenu(t, newFakeSession(ada))
	if handled, _ := m.Update(SessionChangedMsg{Menu: m.ID() + 1000}); handled {
		t.Fatalf("foreign message consumed")
	}
	if m.User() == nil {
		t.Fatalf("foreign message applied")
	}
}

func TestSessionMenuChoose(t *testing.T) {
	m := mountMenu(t, newFakeSession(ada))
	if m.Choose(0) != nil {
		t.Fatalf("closed menu ran an item")
	}
	m.ToggleMenu()
	if m.Choose(5) != nil {
		t.Fatalf("out of range item ran")
	}
	if _, ok := run(m.Choose(1)).(SignedOutMsg); !ok {
		t.Fatalf("Choose(1) did not sign out")
	}
	if m.IsOpen() {
		t.Fatalf("menu still open")
	}
}
