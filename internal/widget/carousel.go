package widget

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrIndexOutOfRange is returned by Carousel.GoTo for an index outside the sequence.
var ErrIndexOutOfRange = errors.New("widget: carousel index out of range")

// CarouselKeyMap binds carousel navigation.
type CarouselKeyMap struct {
	Previous key.Binding
	Next     key.Binding
}

// DefaultCarouselKeys uses h/l and the arrow keys. Digits 1-9 jump directly.
var DefaultCarouselKeys = CarouselKeyMap{
	Previous: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "previous image")),
	Next:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next image")),
}

// Carousel is a cyclic index over a fixed sequence of images.
type Carousel struct {
	images []string
	index  int
	Keys   CarouselKeyMap
}

// NewCarousel copies images; the sequence does not change afterwards.
func NewCarousel(images []string) *Carousel {
	return &Carousel{images: append([]string(nil), images...), Keys: DefaultCarouselKeys}
}

func (c *Carousel) Len() int   { return len(c.images) }
func (c *Carousel) Index() int { return c.index }

// Current returns the displayed image, or false for an empty carousel.
func (c *Carousel) Current() (string, bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.index], true
}

// ShowControls is false when there is nothing to navigate between.
func (c *Carousel) ShowControls() bool { return len(c.images) > 1 }

// Previous steps back, wrapping from the first image to the last.
func (c *Carousel) Previous() {
	if len(c.images) == 0 {
		return
	}
	if c.index == 0 {
		c.index = len(c.images) - 1
		return
	}
	c.index--
}

// Next steps forward, wrapping from the last image to the first.
func (c *Carousel) Next() {
	if len(c.images) == 0 {
		return
	}
	if c.index == len(c.images)-1 {
		c.index = 0
		return
	}
	c.index++
}

// GoTo jumps to image i. Out-of-range input leaves the index unchanged.
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= len(c.images) {
		return fmt.Errorf("goto %d of %d: %w", i, len(c.images), ErrIndexOutOfRange)
	}
	c.index = i
	return nil
}

// Indicators returns one entry per image, true for the current one.
func (c *Carousel) Indicators() []bool {
	out := make([]bool, len(c.images))
	if len(out) > 0 {
		out[c.index] = true
	}
	return out
}

// AltText labels the current image the way screen readers would announce it.
func (c *Carousel) AltText(name string) string {
	return fmt.Sprintf("%s screenshot %d", name, c.index+1)
}

// Update handles navigation keys and reports whether msg was consumed.
// Keys are ignored when the controls are hidden.
func (c *Carousel) Update(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !c.ShowControls() {
		return false
	}
	switch {
	case key.Matches(km, c.Keys.Previous):
		c.Previous()
		return true
	case key.Matches(km, c.Keys.Next):
		c.Next()
		return true
	}
	if km.Type == tea.KeyRunes && len(km.Runes) == 1 {
		if n, err := strconv.Atoi(string(km.Runes)); err == nil && n >= 1 {
			return c.GoTo(n-1) == nil
		}
	}
	return false
}
