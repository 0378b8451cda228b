// Package session tracks whether the operator is signed in. The credential
// check is a fixed comparison that callers use to guard their own surfaces;
// it is not a security boundary.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"cadence/internal/logging"
)

const (
	demoIdentifier = "angel"
	demoSecret     = "ingeniero89"
	demoEmail      = "demo@google.com"
)

// ErrInvalidCredentials is returned by Login for any pair other than the
// recognized one.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is the identity attached to an authenticated session.
type User struct {
	Email string `json:"email"`
}

// Gate holds the authenticated flag and the current identity.
type Gate struct {
	mu            sync.Mutex
	authenticated bool
	user          *User
	onLogout      []func()
	logger        *slog.Logger
}

// NewGate returns an unauthenticated gate.
func NewGate(logger *slog.Logger) *Gate {
	return &Gate{logger: logging.NewComponentLogger(logger, "session")}
}

// OnLogout registers fn to run after every Logout and rejected Login.
func (g *Gate) OnLogout(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	g.onLogout = append(g.onLogout, fn)
	g.mu.Unlock()
}

// Login authenticates the session when identifier and secret match the
// recognized pair. Any other input fails and signs the gate out through the
// same hooks Logout runs, so no earlier selection survives a rejected login.
func (g *Gate) Login(identifier, secret string) error {
	if identifier != demoIdentifier || secret != demoSecret {
		g.signOut()
		g.logger.Info("login rejected", logging.String("identifier", identifier))
		return ErrInvalidCredentials
	}
	g.mu.Lock()
	g.authenticated = true
	g.user = &User{Email: demoEmail}
	g.mu.Unlock()
	g.logger.Info("login accepted", logging.String("email", demoEmail))
	return nil
}

// Logout clears the flag and identity, then runs the registered hooks.
func (g *Gate) Logout() {
	g.signOut()
	g.logger.Info("logged out")
}

// signOut resets the gate and runs the hooks outside the lock, since hooks
// may call back into their owner.
func (g *Gate) signOut() {
	g.mu.Lock()
	g.authenticated = false
	g.user = nil
	hooks := append([]func(){}, g.onLogout...)
	g.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Authenticated reports the current flag.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// User returns the current identity, if any.
func (g *Gate) User() (User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return User{}, false
	}
	return *g.user, true
}
