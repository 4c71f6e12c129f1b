package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("Secret1!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if digest == "Secret1!" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !VerifyPassword("Secret1!", digest) {
		t.Fatalf("expected digest to verify against its own plaintext")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (per-record salt)")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	digest, err := HashPassword("correct")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if VerifyPassword("wrong", digest) {
		t.Fatalf("expected mismatch to verify as false")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-digest") {
		t.Fatalf("malformed digest must verify as false, not panic or pass")
	}
}
