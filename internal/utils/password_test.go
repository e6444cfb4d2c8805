package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2abc", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2abc" {
		t.Fatal("hash equals the plain password")
	}
	if !VerifyPassword(hash, "hunter2abc") {
		t.Error("correct password did not verify")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("wrong password verified")
	}
	if VerifyPassword("not-a-bcrypt-hash", "hunter2abc") {
		t.Error("malformed hash verified")
	}
}

func TestHashPasswordZeroCostFallsBack(t *testing.T) {
	hash, err := HashPassword("hunter2abc", 0)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hunter2abc") {
		t.Error("hash from fallback cost did not verify")
	}
}
