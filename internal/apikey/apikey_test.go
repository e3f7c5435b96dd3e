package apikey

import (
	"errors"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	key := "history-key"

	hash, err := Hash(key)
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("Hash should start with $argon2id$v=19$, got: %s", hash)
	}
	if !IsHash(hash) {
		t.Error("IsHash(Hash()) = false, want true")
	}

	// Hash should be different each time (different salt)
	hash2, err := Hash(key)
	if err != nil {
		t.Fatalf("Hash() failed on second call: %v", err)
	}
	if hash == hash2 {
		t.Error("Two hashes of same key should be different (different salts)")
	}
}

// Well-formed salt and sum: 16 and 32 bytes.
const (
	testSalt = "c2FsdHNhbHRzYWx0c2FsdA"
	testSum  = "aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"
)

func TestVerify(t *testing.T) {
	key := "history-key"

	hash, err := Hash(key)
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}

	tests := []struct {
		name    string
		key     string
		hash    string
		want    bool
		wantErr bool
	}{
		{"correct key", key, hash, true, false},
		{"wrong key", "other-key", hash, false, false},
		{"empty key", "", hash, false, false},
		{"wrong algorithm", key, "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", false, true},
		{"too few parts", key, "$argon2id$v=19$salt", false, true},
		{"bad parameters", key, "$argon2id$v=19$memory$c2FsdA$aGFzaA", false, true},
		{"bad salt", key, "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", false, true},
		{"zero rounds", key, "$argon2id$v=19$m=65536,t=0,p=4$" + testSalt + "$" + testSum, false, true},
		{"too many rounds", key, "$argon2id$v=19$m=65536,t=1000,p=4$" + testSalt + "$" + testSum, false, true},
		{"zero threads", key, "$argon2id$v=19$m=65536,t=1,p=0$" + testSalt + "$" + testSum, false, true},
		{"threads overflow", key, "$argon2id$v=19$m=65536,t=1,p=300$" + testSalt + "$" + testSum, false, true},
		{"memory below 8 per thread", key, "$argon2id$v=19$m=16,t=1,p=4$" + testSalt + "$" + testSum, false, true},
		{"memory too large", key, "$argon2id$v=19$m=4294967295,t=1,p=4$" + testSalt + "$" + testSum, false, true},
		{"old version", key, "$argon2id$v=16$m=65536,t=1,p=4$" + testSalt + "$" + testSum, false, true},
		{"short salt", key, "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$" + testSum, false, true},
		{"short hash", key, "$argon2id$v=19$m=65536,t=1,p=4$" + testSalt + "$aGFzaA", false, true},
		{"well formed but different", key, "$argon2id$v=19$m=64,t=1,p=1$" + testSalt + "$" + testSum, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckHash(tt.hash); (err != nil) != tt.wantErr {
				t.Errorf("CheckHash() error = %v, wantErr %v", err, tt.wantErr)
			}

			got, err := Verify(tt.key, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidHash) {
				t.Errorf("Verify() error = %v, want ErrInvalidHash", err)
			}
			if got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	hash, err := Hash("secret")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}

	tests := []struct {
		name       string
		key        string
		configured string
		want       bool
	}{
		{"plaintext match", "secret", "secret", true},
		{"plaintext mismatch", "secret", "secreT", false},
		{"hash match", "secret", hash, true},
		{"hash mismatch", "guess", hash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.key, tt.configured)
			if err != nil {
				t.Fatalf("Match() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if len(a) != 43 {
		t.Errorf("len(Generate()) = %d, want 43", len(a))
	}
	if a == b {
		t.Error("Generate() returned the same key twice")
	}
	if IsHash(a) {
		t.Error("IsHash(Generate()) = true, want false")
	}
}
