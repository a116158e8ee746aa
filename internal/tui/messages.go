package tui

import (
	"github.com/jask/showcase/internal/widget"
)

type statusMsg struct {
	text  string
	isErr bool
}

type errMsg struct{ error }

type navigateMsg struct {
	route Route
}

type bookmarksLoadedMsg struct {
	page    uint64
	owner   *widget.User
	records []widget.BookmarkRecord
	err     error
}

type signedInMsg struct {
	page uint64
	user *widget.User
	next Route
	err  error
}

type externalOpenedMsg struct {
	url string
	err error
}
