package tui

import (
	"github.com/jask/showcase/internal/keys"
)

// effects is the widget.Effects host: a scroll lock counter and the key
// registry's dynamic bindings.
type effects struct {
	keys  *keys.Registry
	locks int
}

func (e *effects) LockScroll() func() {
	e.locks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		e.locks--
	}
}

func (e *effects) BindKey(ks []string, fn func()) func() {
	return e.keys.Bind(ks, fn)
}

func (e *effects) scrollLocked() bool { return e.locks > 0 }
