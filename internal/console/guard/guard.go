package guard

import (
	"context"
	"sync"
)

// State tracks a guard through its single verification attempt.
type State int

const (
	Unchecked State = iota
	Pending
	Authorized
	Redirecting
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	case Redirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

type Verifier interface {
	Verify(ctx context.Context) error
}

type SessionStore interface {
	Token() string
	Clear() error
}

// Guard gates access to the admin views. Each Guard verifies at most
// once: Redirecting is terminal, and a fresh Guard must be created to
// try again (mirrors a route remount).
type Guard struct {
	mu       sync.Mutex
	state    State
	session  SessionStore
	verifier Verifier
}

func New(session SessionStore, verifier Verifier) *Guard {
	return &Guard{state: Unchecked, session: session, verifier: verifier}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check resolves the guard. Without a stored token it redirects
// immediately and never touches the network. With one, it runs the
// verification call; rejection purges the token before redirecting.
func (g *Guard) Check(ctx context.Context) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unchecked {
		return g.state
	}

	if g.session.Token() == "" {
		g.state = Redirecting
		return g.state
	}

	g.state = Pending
	if err := g.verifier.Verify(ctx); err != nil {
		_ = g.session.Clear()
		g.state = Redirecting
		return g.state
	}

	g.state = Authorized
	return g.state
}
