// Package guard decides whether a protected view may be entered.
//
// The decision is derived from the session flag on every call; nothing is
// cached. A denial is a policy outcome, not an error.
package guard

import (
	"net/http"
)

// DefaultRedirect is where denied navigations are sent.
const DefaultRedirect = "/"

// Session exposes the authenticated flag. *session.Store satisfies it.
type Session interface {
	CurrentValue() bool
}

// Navigator performs a redirect on behalf of the guard.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Decision is the outcome of a guard check.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard protects views behind the session flag.
type Guard struct {
	session  Session
	redirect string
}

// Option configures a Guard.
type Option func(*Guard)

// WithRedirect overrides the redirect target for denied navigations.
func WithRedirect(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.redirect = path
		}
	}
}

// New creates a guard reading from session.
func New(session Session, opts ...Option) *Guard {
	g := &Guard{session: session, redirect: DefaultRedirect}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the policy without side effects.
func (g *Guard) Check() Decision {
	if g.session.CurrentValue() {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, Redirect: g.redirect}
}

// CanEnter evaluates the policy and, on denial, redirects through nav.
// A nil navigator only reports the decision.
func (g *Guard) CanEnter(nav Navigator) bool {
	d := g.Check()
	if !d.Allowed && nav != nil {
		nav.Navigate(d.Redirect)
	}
	return d.Allowed
}

// Middleware protects an HTTP handler. Denied requests receive 302 Found to
// the redirect target.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := g.CanEnter(NavigatorFunc(func(path string) {
			http.Redirect(w, r, path, http.StatusFound)
		}))
		if !allowed {
			return
		}
		next.ServeHTTP(w, r)
	})
}
