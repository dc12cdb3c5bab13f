package auth

import (
	"testing"

	"visitor-cli/internal/session"
)

func TestCheck(t *testing.T) {
	store := session.NewMemoryStore()
	if got := Check(store); got != Unauthenticated {
		t.Fatalf("empty store: got %v", got)
	}

	_ = store.Save(session.Session{Token: "abc"})
	if got := Check(store); got != Authenticated {
		t.Fatalf("with token: got %v", got)
	}

	_ = store.Clear()
	if got := Check(store); got != Unauthenticated {
		t.Fatalf("after clear: got %v", got)
	}

	if got := Check(nil); got != Unauthenticated {
		t.Fatalf("nil store: got %v", got)
	}
}
