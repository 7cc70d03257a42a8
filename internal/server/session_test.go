package server

import (
	"testing"
	"time"
)

func TestSessionStore_CreateAndValidate(t *testing.T) {
	store := NewSessionStore(time.Minute)

	token := store.Create("admin")
	if token == "" {
		t.Fatal("empty session token")
	}
	if !store.Valid(token) {
		t.Error("freshly created session should be valid")
	}
	if store.Valid("") {
		t.Error("empty token must never validate")
	}
	if store.Valid("not-a-token") {
		t.Error("unknown token validated")
	}
}

func TestSessionStore_Revoke(t *testing.T) {
	store := NewSessionStore(time.Minute)
	token := store.Create("admin")

	store.Revoke(token)
	if store.Valid(token) {
		t.Error("revoked session still valid")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	token := store.Create("admin")

	time.Sleep(30 * time.Millisecond)
	if store.Valid(token) {
		t.Error("expired session still valid")
	}
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	store := NewSessionStore(time.Minute)
	if store.Create("admin") == store.Create("admin") {
		t.Error("two sessions shared a token")
	}
}

func TestIPLimiter(t *testing.T) {
	l := newIPLimiter(60, 2)

	// Burst allows the first attempts, then denies.
	if !l.Allow("1.2.3.4") || !l.Allow("1.2.3.4") {
		t.Fatal("burst attempts should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Error("attempt over burst should be denied")
	}

	// A different client has its own bucket.
	if !l.Allow("5.6.7.8") {
		t.Error("independent client was throttled")
	}
}
