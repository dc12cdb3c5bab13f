// Package auth decides whether admin screens are reachable.
package auth

import "visitor-cli/internal/session"

// State is the protected-route state.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Check derives the state solely from the presence of a stored token.
// Token validity is only discovered when the backend answers 401.
func Check(store session.Store) State {
	if store == nil || store.Load().Token == "" {
		return Unauthenticated
	}
	return Authenticated
}
