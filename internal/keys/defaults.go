package keys

import "strings"

const (
	ActionQuit        = "quit"
	ActionBack        = "back"
	ActionWebsites    = "websites"
	ActionCreators    = "creators"
	ActionBookmarks   = "bookmarks"
	ActionSearch      = "search"
	ActionSignIn      = "sign-in"
	ActionMenu        = "menu"
	ActionPreviewMode = "preview-mode"
	ActionNext        = "next"
	ActionPrev        = "prev"
	ActionOpen        = "open"
	ActionBookmark    = "bookmark"
	ActionPreview     = "preview"
	ActionSubmit      = "submit"
)

const (
	ScopeWebsites  = "page:websites"
	ScopeWebsite   = "page:website"
	ScopeCreators  = "page:creators"
	ScopeCreator   = "page:creator"
	ScopeBookmarks = "page:bookmarks"
	ScopeSignIn    = "page:sign-in"
	ScopeSearch    = "page:search"
)

// browse covers pages without a text input, where single letters are free.
var browse = []string{ScopeWebsites, ScopeWebsite, ScopeCreators, ScopeCreator, ScopeBookmarks}

var lists = []string{ScopeWebsites, ScopeCreators, ScopeBookmarks, ScopeSearch, ScopeWebsite, ScopeCreator}

func Defaults() []Binding {
	return []Binding{
		{Keys: []string{"ctrl+c"}, Action: ActionQuit, Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: ActionQuit, Description: "quit", Scopes: browse},
		{Keys: []string{"esc"}, Action: ActionBack, Description: "back", Scopes: []string{"*"}},
		{Keys: []string{"backspace"}, Action: ActionBack, Scopes: []string{ScopeWebsite, ScopeCreator}},
		{Keys: []string{"1"}, Action: ActionWebsites, Description: "websites", Scopes: []string{ScopeWebsites, ScopeCreators, ScopeBookmarks}},
		{Keys: []string{"2"}, Action: ActionCreators, Description: "creators", Scopes: []string{ScopeWebsites, ScopeCreators, ScopeBookmarks}},
		{Keys: []string{"3"}, Action: ActionBookmarks, Description: "bookmarks", Scopes: []string{ScopeWebsites, ScopeCreators, ScopeBookmarks}},
		{Keys: []string{"/"}, Action: ActionSearch, Description: "search", Scopes: browse},
		{Keys: []string{"s"}, Action: ActionSignIn, Description: "sign in", Scopes: browse},
		{Keys: []string{"u"}, Action: ActionMenu, Description: "account", Scopes: browse},
		{Keys: []string{"v"}, Action: ActionPreviewMode, Description: "preview mode", Scopes: browse},
		{Keys: []string{"j", "down", "tab"}, Action: ActionNext, Scopes: browse},
		{Keys: []string{"k", "up", "shift+tab"}, Action: ActionPrev, Scopes: browse},
		{Keys: []string{"down", "tab"}, Action: ActionNext, Scopes: []string{ScopeSearch}},
		{Keys: []string{"up", "shift+tab"}, Action: ActionPrev, Scopes: []string{ScopeSearch}},
		{Keys: []string{"enter"}, Action: ActionOpen, Description: "open", Scopes: lists},
		{Keys: []string{"m"}, Action: ActionBookmark, Description: "bookmark", Scopes: []string{ScopeWebsite}},
		{Keys: []string{"p"}, Action: ActionPreview, Description: "preview", Scopes: []string{ScopeWebsite, ScopeCreator}},
		{Keys: []string{"enter"}, Action: ActionSubmit, Description: "sign in", Scopes: []string{ScopeSignIn}},
	}
}

// ApplyOverrides replaces the keys of every binding whose action appears in
// overrides. Empty override lists are ignored.
func ApplyOverrides(bindings []Binding, overrides map[string][]string) []Binding {
	out := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		next := Binding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if ks, ok := overrides[strings.ToLower(b.Action)]; ok && len(ks) > 0 {
			next.Keys = append([]string(nil), ks...)
		}
		out = append(out, next)
	}
	return out
}
