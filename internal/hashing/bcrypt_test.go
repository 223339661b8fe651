package hashing

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	hash, err := b.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if !b.Compare(hash, "secret") {
		t.Fatal("expected matching password to compare")
	}
	if b.Compare(hash, "wrong") {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestNewBcrypt_CostBounds(t *testing.T) {
	if got := NewBcrypt(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("zero cost: expected default %d, got %d", bcrypt.DefaultCost, got)
	}
	if got := NewBcrypt(-5).cost; got != bcrypt.MinCost {
		t.Fatalf("negative cost: expected min %d, got %d", bcrypt.MinCost, got)
	}
	if got := NewBcrypt(100).cost; got != bcrypt.MaxCost {
		t.Fatalf("oversized cost: expected max %d, got %d", bcrypt.MaxCost, got)
	}
	if got := NewBcrypt(bcrypt.MinCost + 2).cost; got != bcrypt.MinCost+2 {
		t.Fatalf("in-range cost changed: got %d", got)
	}
}
