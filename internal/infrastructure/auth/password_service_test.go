package auth

import (
	"strings"
	"testing"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	digest, err := svc.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(digest, "$argon2id$") {
		t.Errorf("expected PHC argon2id digest, got %s", digest)
	}

	if !svc.Verify(digest, "correct horse battery staple") {
		t.Error("expected matching password to verify")
	}
	if svc.Verify(digest, "wrong password") {
		t.Error("expected non-matching password to fail")
	}
}

func TestPasswordService_DigestsAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected distinct digests for the same input")
	}
	if !svc.Verify(first, "secret123") || !svc.Verify(second, "secret123") {
		t.Error("expected both digests to verify")
	}
}

func TestPasswordService_MalformedDigest(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty", digest: ""},
		{name: "not a PHC string", digest: "plainly-not-a-hash"},
		{name: "wrong algorithm", digest: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "missing sections", digest: "$argon2id$v=19$m=65536,t=1,p=4"},
		{name: "bad salt encoding", digest: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "bad params", digest: "$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must fail closed, never panic.
			if svc.Verify(tt.digest, "anything") {
				t.Error("expected malformed digest to verify as false")
			}
		})
	}
}

func TestPasswordService_HashesArbitraryLengthInput(t *testing.T) {
	svc := NewPasswordService()

	// Refresh tokens run far past typical password length; the hasher is
	// shared with the session store, so long inputs must round-trip.
	long := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 40)

	digest, err := svc.Hash(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Verify(digest, long) {
		t.Error("expected long input to verify")
	}
}
