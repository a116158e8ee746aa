package overlay

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func baseRows(n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("row-%d................", i)
	}
	return strings.Join(rows, "\n")
}

func TestRenderKeepsBaseAroundPopup(t *testing.T) {
	out, bounds := Render(baseRows(9), "Popup", Card, Center, 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Popup") {
		t.Fatalf("expected popup content in output")
	}
	if !strings.Contains(lines[0], "row-0") {
		t.Fatalf("expected top base row preserved, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected bottom base row preserved, got %q", lines[8])
	}
	if bounds.Y == 0 || bounds.Y+bounds.H > 9 {
		t.Fatalf("bounds = %+v", bounds)
	}
}

func TestBoundsTopRight(t *testing.T) {
	framed := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Render("menu")
	r := Bounds(framed, TopRight, 40, 10)
	if r.X+r.W != 40 || r.Y != 1 {
		t.Fatalf("bounds = %+v, want flush right below the first row", r)
	}
	if !r.Contains(r.X, r.Y) || r.Contains(r.X-1, r.Y) || r.Contains(r.X, r.Y+r.H) {
		t.Fatalf("Contains disagrees with bounds %+v", r)
	}
}

func TestRenderZeroSize(t *testing.T) {
	if out, _ := Render("x", "y", Card, Center, 0, 5); out != "" {
		t.Fatalf("got %q", out)
	}
}
