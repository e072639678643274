package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plain text")
	}

	if !Verify("secret123", hash) {
		t.Fatal("correct password rejected")
	}
	if Verify("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
}
