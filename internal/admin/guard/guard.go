// Package guard decides whether a view may be shown for the current session.
package guard

import (
	"sync"

	"github.com/transellia/admin-console/internal/admin/session"
)

type Decision int

const (
	// Pending means rehydration has not finished; show nothing yet.
	Pending Decision = iota
	Allow
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

const (
	ViewLogin         = "login"
	ViewDashboard     = "dashboard"
	ViewUsers         = "users"
	ViewSubscriptions = "subscriptions"
	ViewPayments      = "payments"
	ViewIncome        = "income"
	ViewStores        = "stores"
)

var protected = map[string]bool{
	ViewDashboard:     true,
	ViewUsers:         true,
	ViewSubscriptions: true,
	ViewPayments:      true,
	ViewIncome:        true,
	ViewStores:        true,
}

// IsProtected reports whether view requires an authenticated session.
func IsProtected(view string) bool {
	return protected[view]
}

// Decide maps a session snapshot to a decision for a protected view.
func Decide(s session.Snapshot) Decision {
	switch {
	case s.IsLoading:
		return Pending
	case s.IsAuthenticated:
		return Allow
	default:
		return Redirect
	}
}

// Outcome is the result of entering a view: the decision and the view that
// should actually be shown ("" while pending).
type Outcome struct {
	Decision Decision
	View     string
}

// Source is the read side of the session store.
type Source interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) (cancel func())
}

type Guard struct {
	src Source
}

func New(src Source) *Guard {
	return &Guard{src: src}
}

// Enter evaluates the current session for view. Public views are always
// allowed.
func (g *Guard) Enter(view string) Outcome {
	if !IsProtected(view) {
		return Outcome{Decision: Allow, View: view}
	}
	switch d := Decide(g.src.Snapshot()); d {
	case Allow:
		return Outcome{Decision: Allow, View: view}
	case Redirect:
		return Outcome{Decision: Redirect, View: ViewLogin}
	default:
		return Outcome{Decision: Pending}
	}
}

// Watch calls fn with every new decision for protected views, starting with
// the current one. The returned function stops watching.
func (g *Guard) Watch(fn func(Decision)) (cancel func()) {
	var (
		mu   sync.Mutex
		last = Decide(g.src.Snapshot())
	)
	fn(last)

	return g.src.Subscribe(func(s session.Snapshot) {
		d := Decide(s)
		mu.Lock()
		changed := d != last
		last = d
		mu.Unlock()
		if changed {
			fn(d)
		}
	})
}
