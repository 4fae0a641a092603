// Package guard keeps note surfaces behind an active session.
package guard

import (
	"sync"

	"github.com/Paintersrp/noted/internal/session"
)

// Sessions is the part of the session store the guard watches.
type Sessions interface {
	Current() session.Session
	Subscribe(fn func(session.Session)) func()
}

// Guard redirects when there is no token and triggers one fetch each time a
// new token becomes current.
type Guard struct {
	sessions   Sessions
	onRedirect func()
	onFetch    func()

	mu          sync.Mutex
	lastToken   string
	unsubscribe func()
}

func New(sessions Sessions, onRedirect, onFetch func()) *Guard {
	if onRedirect == nil {
		onRedirect = func() {}
	}
	if onFetch == nil {
		onFetch = func() {}
	}
	return &Guard{
		sessions:   sessions,
		onRedirect: onRedirect,
		onFetch:    onFetch,
	}
}

// Enter evaluates the current session straight away and then again on every
// change until Leave. It reports whether the session was active.
func (g *Guard) Enter() bool {
	g.mu.Lock()
	if g.unsubscribe == nil {
		g.unsubscribe = g.sessions.Subscribe(func(s session.Session) { g.evaluate(s) })
	}
	g.mu.Unlock()

	return g.evaluate(g.sessions.Current())
}

// Leave stops watching the session. Enter may be called again afterwards.
func (g *Guard) Leave() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.lastToken = ""
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *Guard) evaluate(s session.Session) bool {
	g.mu.Lock()
	if s.Token == "" {
		g.lastToken = ""
		g.mu.Unlock()
		g.onRedirect()
		return false
	}

	fetch := s.Token != g.lastToken
	g.lastToken = s.Token
	g.mu.Unlock()

	if fetch {
		g.onFetch()
	}
	return true
}
