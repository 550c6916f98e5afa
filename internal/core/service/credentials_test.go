package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("12345678")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "12345678" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify("12345678", hash) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("87654321", hash) {
		t.Fatalf("wrong password verified")
	}

	again, _ := h.Hash("12345678")
	if again == hash {
		t.Fatalf("expected a fresh salt per hash")
	}
}

func TestPasswordHasher_CostFallback(t *testing.T) {
	if got := NewPasswordHasher(0).cost; got != DefaultPasswordCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(bcrypt.MaxCost + 1).cost; got != DefaultPasswordCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
