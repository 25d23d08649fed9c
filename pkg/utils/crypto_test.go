package utils

import (
	"errors"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt(t *testing.T) {
	sealed, err := Encrypt([]byte("AQX-access-token"), testKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if sealed == "AQX-access-token" {
		t.Fatal("ciphertext must differ from plaintext")
	}

	plain, err := Decrypt(sealed, testKey)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if plain != "AQX-access-token" {
		t.Errorf("Decrypt = %q", plain)
	}
}

func TestEncrypt_UsesFreshNonce(t *testing.T) {
	a, _ := Encrypt([]byte("same"), testKey)
	b, _ := Encrypt([]byte("same"), testKey)
	if a == b {
		t.Error("two encryptions of the same plaintext should differ")
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	sealed, _ := Encrypt([]byte("secret"), testKey)
	if _, err := Decrypt(sealed, []byte("ffffffffffffffffffffffffffffffff")); err == nil {
		t.Fatal("expected error with wrong key")
	}
}

func TestDecrypt_TooShort(t *testing.T) {
	if _, err := Decrypt("AAAA", testKey); !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("err = %v, want ErrCiphertextTooShort", err)
	}
}

func TestEncryptOptional_Empty(t *testing.T) {
	got, err := EncryptOptional("", testKey)
	if err != nil || got != "" {
		t.Fatalf("EncryptOptional(\"\") = %q, %v", got, err)
	}
}
