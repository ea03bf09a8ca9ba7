package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter42")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "hunter42" {
		t.Fatalf("hash looks wrong: %q", hash)
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Fatalf("hash is not bcrypt-shaped: %q", hash)
	}

	if !Verify("hunter42", hash) {
		t.Fatalf("Verify rejected the original password")
	}
	if Verify("hunter43", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("Verify should degrade to false on a malformed hash")
	}
	if Verify("anything", "") {
		t.Fatalf("Verify should degrade to false on an empty hash")
	}
}
