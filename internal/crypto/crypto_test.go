package crypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	plaintext := []byte("fleet archive bytes")

	sealed, err := Seal(plaintext, "correct horse")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatal("Seal() left the plaintext visible")
	}
	if !IsSealed(sealed) {
		t.Error("IsSealed() = false for sealed data")
	}

	got, err := Open(sealed, "correct horse")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open() = %q, want %q", got, plaintext)
	}
}

func TestOpenRejectsWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if _, err := Open(sealed, "wrong"); err != ErrInvalidCiphertext {
		t.Errorf("Open() with wrong passphrase error = %v, want %v", err, ErrInvalidCiphertext)
	}
}

func TestOpenRejectsTamperedData(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "key")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := Open(sealed, "key"); err != ErrInvalidCiphertext {
		t.Errorf("Open() with tampered data error = %v, want %v", err, ErrInvalidCiphertext)
	}
}

func TestOpenRejectsUnsealedData(t *testing.T) {
	if _, err := Open([]byte("just some bytes"), "key"); err != ErrNotSealed {
		t.Errorf("Open() on plain data error = %v, want %v", err, ErrNotSealed)
	}
}

func TestSealRequiresPassphrase(t *testing.T) {
	if _, err := Seal([]byte("data"), ""); err != ErrInvalidPassphrase {
		t.Errorf("Seal() with empty passphrase error = %v, want %v", err, ErrInvalidPassphrase)
	}
	if _, err := Open([]byte("data"), ""); err != ErrInvalidPassphrase {
		t.Errorf("Open() with empty passphrase error = %v, want %v", err, ErrInvalidPassphrase)
	}
}

func TestIsSealedOnPlainData(t *testing.T) {
	if IsSealed([]byte(`{"vehicles":[]}`)) {
		t.Error("IsSealed() = true for plain JSON")
	}
	if IsSealed(nil) {
		t.Error("IsSealed() = true for empty data")
	}
}
