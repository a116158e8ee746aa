package tui

import (
	"github.com/jask/showcase/internal/keys"
)

type routeKind string

const (
	routeWebsites  routeKind = "websites"
	routeWebsite   routeKind = "website"
	routeCreators  routeKind = "creators"
	routeCreator   routeKind = "creator"
	routeBookmarks routeKind = "bookmarks"
	routeSignIn    routeKind = "sign-in"
	routeSearch    routeKind = "search"
)

// Route identifies a page. Slug is set for detail pages; Next is where the
// sign-in page returns to.
type Route struct {
	Kind routeKind
	Slug string
	Next *Route
}

func (r Route) String() string {
	if r.Slug != "" {
		return string(r.Kind) + "/" + r.Slug
	}
	return string(r.Kind)
}

func (r Route) scope() string {
	switch r.Kind {
	case routeWebsite:
		return keys.ScopeWebsite
	case routeCreators:
		return keys.ScopeCreators
	case routeCreator:
		return keys.ScopeCreator
	case routeBookmarks:
		return keys.ScopeBookmarks
	case routeSignIn:
		return keys.ScopeSignIn
	case routeSearch:
		return keys.ScopeSearch
	default:
		return keys.ScopeWebsites
	}
}

// section is the navbar tab a route belongs to.
func (r Route) section() routeKind {
	switch r.Kind {
	case routeWebsite:
		return routeWebsites
	case routeCreator:
		return routeCreators
	default:
		return r.Kind
	}
}

type routeStack struct {
	items []Route
}

func (s *routeStack) Push(r Route) {
	s.items = append(s.items, r)
}

func (s *routeStack) Pop() (Route, bool) {
	if len(s.items) == 0 {
		return Route{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

func (s routeStack) Top() (Route, bool) {
	if len(s.items) == 0 {
		return Route{}, false
	}
	return s.items[len(s.items)-1], true
}
