package crypto

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if string(hash) == "Sup3rSecret" {
		t.Fatal("hash equals plaintext")
	}
	if err := ComparePassword(hash, "Sup3rSecret"); err != nil {
		t.Fatalf("ComparePassword rejected correct password: %v", err)
	}
	if err := ComparePassword(hash, "WrongPass1"); err == nil {
		t.Fatal("ComparePassword accepted wrong password")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken returned error: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if token == hash {
		t.Fatal("raw token must differ from its hash")
	}
	if HashToken(token) != hash {
		t.Fatal("hash does not match HashToken(token)")
	}

	other, _, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken returned error: %v", err)
	}
	if other == token {
		t.Fatal("two generated tokens collided")
	}
}

func TestSignAndVerify(t *testing.T) {
	tag := SignMessage("secret", "hello")
	if !VerifySignature("secret", "hello", tag) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature("secret", "tampered", tag) {
		t.Fatal("signature accepted for different message")
	}
	if VerifySignature("other-secret", "hello", tag) {
		t.Fatal("signature accepted under different secret")
	}
}
