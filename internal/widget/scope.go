package widget

import "sync/atomic"

// Scope collects release funcs for effects acquired together and runs them
// exactly once, in reverse order of acquisition.
type Scope struct {
	releases []func()
	released bool
}

// Acquire records release to run when the scope ends. Acquiring on an ended
// scope runs release immediately.
func (s *Scope) Acquire(release func()) {
	if release == nil {
		return
	}
	if s.released {
		release()
		return
	}
	s.releases = append(s.releases, release)
}

// Release runs every recorded release func. Later calls do nothing.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}

var lastInstanceID atomic.Uint64

func newInstanceID() uint64 { return lastInstanceID.Add(1) }
