package workspace

import "cadence/internal/session"

// Login checks the credential pair against the session gate.
func (w *Workspace) Login(identifier, secret string) error {
	return w.gate.Login(identifier, secret)
}

// Logout signs out and clears every selection.
func (w *Workspace) Logout() {
	w.gate.Logout()
}

func (w *Workspace) Authenticated() bool {
	return w.gate.Authenticated()
}

func (w *Workspace) User() (session.User, bool) {
	return w.gate.User()
}
