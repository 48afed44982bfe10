package httpapi

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := issueToken(secret, "emp-1", 30*time.Minute, time.Now())
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	subject, err := parseToken(secret, token)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if subject != "emp-1" {
		t.Errorf("subject = %q, want %q", subject, "emp-1")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := issueToken([]byte("secret-a"), "emp-1", 30*time.Minute, time.Now())
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	if _, err := parseToken([]byte("secret-b"), token); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := issueToken(secret, "emp-1", time.Hour, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	if _, err := parseToken(secret, token); err == nil {
		t.Error("expired token verified")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := parseToken([]byte("test-secret"), "not.a.token"); err == nil {
		t.Error("garbage token verified")
	}
}
