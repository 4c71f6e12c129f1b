package auth

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret")

	tok, err := issuer.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != TokenTTL {
		t.Fatalf("expected 1h validity, got %v", got)
	}
}

func TestIssuer_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret").WithClock(fixedClock(issued))

	tok, err := issuer.Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.WithClock(fixedClock(issued.Add(59 * time.Minute)))
	if _, err := issuer.Verify(tok); err != nil {
		t.Fatalf("token should still be valid at +59m: %v", err)
	}

	issuer.WithClock(fixedClock(issued.Add(61 * time.Minute)))
	if _, err := issuer.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("token should be invalid at +61m, got %v", err)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	tok, err := NewIssuer("secret-a").Issue("a@b.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := NewIssuer("secret-b").Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	issuer := NewIssuer("secret")
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(tok); err != ErrInvalidToken {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
