//go:build !windows

package filestore

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		plain []byte
	}{
		{name: "empty", plain: []byte{}},
		{name: "short", plain: []byte("pw")},
		{name: "binary", plain: []byte{0x00, 0xff, 0x00, 0x10}},
		{name: "long", plain: bytes.Repeat([]byte("secret"), 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := encryptValue(tt.plain)
			if err != nil {
				t.Fatalf("encryptValue: %v", err)
			}
			if bytes.Contains(enc, tt.plain) && len(tt.plain) > 0 {
				t.Error("ciphertext contains the plaintext")
			}
			got, err := decryptValue(enc)
			if err != nil {
				t.Fatalf("decryptValue: %v", err)
			}
			if !bytes.Equal(got, tt.plain) {
				t.Errorf("round trip = %x, want %x", got, tt.plain)
			}
		})
	}
}

func TestEncryptNonceIsFresh(t *testing.T) {
	a, err := encryptValue([]byte("same input"))
	if err != nil {
		t.Fatalf("encryptValue: %v", err)
	}
	b, err := encryptValue([]byte("same input"))
	if err != nil {
		t.Fatalf("encryptValue: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same input are identical")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	enc, err := encryptValue([]byte("integrity"))
	if err != nil {
		t.Fatalf("encryptValue: %v", err)
	}
	enc[len(enc)-1] ^= 0x01
	if _, err := decryptValue(enc); err == nil {
		t.Error("decryptValue accepted tampered ciphertext")
	}
}

func TestDecryptRejectsTruncated(t *testing.T) {
	if _, err := decryptValue([]byte("short")); err == nil {
		t.Error("decryptValue accepted truncated input")
	}
}
