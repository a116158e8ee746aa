// Package widget contains the interactive controllers shared by the pages:
// image carousel, preview modal, bookmark toggle and session menu.
//
// Allowed here:
//   - bounded state machines and the tea.Cmd round trips they start
//   - collaborator contracts (BookmarkStore, SessionSource, EmbedHost, Effects)
//
// Not allowed here:
//   - page layout, routing, or concrete storage/auth implementations
//
// Every async result message carries the owning controller's instance id.
// Controllers drop messages addressed to another instance and ignore
// everything once torn down.
package widget
