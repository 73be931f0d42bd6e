package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.DefaultCost)

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := hasher.Compare(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Compare with correct password failed: %v", err)
	}
	if err := hasher.Compare(hash, "wrong password"); err == nil {
		t.Error("Compare with wrong password should fail")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.DefaultCost)

	h1, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected per-hash salts to produce different hashes for equal passwords")
	}
}

func TestNewBcryptHasher_CostFloor(t *testing.T) {
	hasher := NewBcryptHasher(1)

	hash, err := hasher.Hash("password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost failed: %v", err)
	}
	if cost < bcrypt.DefaultCost {
		t.Errorf("expected cost raised to at least %d, got %d", bcrypt.DefaultCost, cost)
	}
}
