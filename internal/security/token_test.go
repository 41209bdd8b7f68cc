package security

import (
	"errors"
	"testing"
	"time"
)

func TestMintAndVerifySignInToken(t *testing.T) {
	secret := "test-token-secret"

	token, err := MintSignInToken(secret, "classroom-student-7", time.Hour)
	if err != nil {
		t.Fatalf("MintSignInToken failed: %v", err)
	}

	verifier := NewTokenVerifier(secret)
	uid, err := verifier.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if uid != "classroom-student-7" {
		t.Errorf("VerifyToken uid = %v, want classroom-student-7", uid)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := MintSignInToken("right-secret", "learner-1", time.Hour)
	if err != nil {
		t.Fatalf("MintSignInToken failed: %v", err)
	}

	verifier := NewTokenVerifier("wrong-secret")
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	secret := "test-token-secret"

	token, err := MintSignInToken(secret, "learner-1", -time.Minute)
	if err != nil {
		t.Fatalf("MintSignInToken failed: %v", err)
	}

	verifier := NewTokenVerifier(secret)
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken with expired token = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	verifier := NewTokenVerifier("test-token-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestMintSignInTokenRequiresUID(t *testing.T) {
	if _, err := MintSignInToken("secret", "", time.Hour); err == nil {
		t.Error("MintSignInToken with empty uid succeeded, want error")
	}
}
