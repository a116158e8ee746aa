// Package keys resolves key presses to actions per page scope and holds the
// dynamic bindings widgets register while they are mounted.
package keys

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Binding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type handler struct {
	id   uint64
	keys []string
	fn   func()
}

// Registry holds static bindings plus a stack of dynamic handlers.
// The most recently bound handler for a key wins.
type Registry struct {
	bindings []Binding
	handlers []handler
	nextID   uint64
}

func NewRegistry(bindings []Binding) *Registry {
	return &Registry{bindings: slices.Clone(bindings)}
}

func (r *Registry) ForScope(scope string) []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *Registry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalize(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalize(k) == pressed {
				return true
			}
		}
	}
	return false
}

// Action returns the first static action bound to msg in scope.
func (r *Registry) Action(msg tea.KeyMsg, scope string) (string, bool) {
	pressed := normalize(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		if slices.ContainsFunc(b.Keys, func(k string) bool { return normalize(k) == pressed }) {
			return b.Action, true
		}
	}
	return "", false
}

// Bind pushes a dynamic handler for keys. The returned func removes exactly
// this handler and is safe to call more than once.
func (r *Registry) Bind(keys []string, fn func()) func() {
	r.nextID++
	id := r.nextID
	norm := make([]string, len(keys))
	for i, k := range keys {
		norm[i] = normalize(k)
	}
	r.handlers = append(r.handlers, handler{id: id, keys: norm, fn: fn})
	return func() {
		r.handlers = slices.DeleteFunc(r.handlers, func(h handler) bool { return h.id == id })
	}
}

// Bound reports how many dynamic handlers are live.
func (r *Registry) Bound() int { return len(r.handlers) }

// Dispatch runs the newest dynamic handler for msg and reports whether one ran.
func (r *Registry) Dispatch(msg tea.KeyMsg) bool {
	pressed := normalize(msg.String())
	for i := len(r.handlers) - 1; i >= 0; i-- {
		h := r.handlers[i]
		if slices.Contains(h.keys, pressed) {
			h.fn()
			return true
		}
	}
	return false
}

func normalize(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
