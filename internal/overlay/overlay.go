// Package overlay composites a popup card over an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where a popup sits on the canvas.
type Position int

const (
	Center Position = iota
	TopRight
)

// Rect is a cell rectangle on the screen.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Card is the default frame for modal content.
var Card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

// Render draws popup, framed by card, over base and returns the full canvas
// along with the popup's bounds. Base rows outside the popup are kept.
func Render(base, popup string, card lipgloss.Style, pos Position, width, height int) (string, Rect) {
	if width <= 0 || height <= 0 {
		return "", Rect{}
	}
	framed := card.Render(popup)
	bounds := Bounds(framed, pos, width, height)

	rows := canvas(base, width, height)
	cardRows := strings.Split(framed, "\n")
	for i, row := range cardRows {
		y := bounds.Y + i
		if y >= height || i >= bounds.H {
			break
		}
		row = ansi.Truncate(row, bounds.W, "")
		left := ansi.Truncate(rows[y], bounds.X, "")
		right := dropColumns(rows[y], bounds.X+bounds.W)
		rows[y] = pad(left+pad(row, bounds.W)+right, width)
	}
	return strings.Join(rows, "\n"), bounds
}

// Bounds returns where a framed block lands on a width x height canvas.
func Bounds(framed string, pos Position, width, height int) Rect {
	w := min(lipgloss.Width(framed), width)
	h := min(lipgloss.Height(framed), height)
	r := Rect{W: w, H: h}
	switch pos {
	case TopRight:
		r.X = width - w
		r.Y = 1
		if r.Y+h > height {
			r.Y = max(0, height-h)
		}
	default:
		r.X = (width - w) / 2
		r.Y = (height - h) / 2
	}
	return r
}

func canvas(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
