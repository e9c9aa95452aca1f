//go:build !windows

package filestore

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// Embedded key for at-rest encryption. Obfuscation, not strong security:
// anyone with the binary can extract it.
var embeddedKey = [32]byte{
	0x4e, 0xd1, 0x27, 0x88, 0x3a, 0xf5, 0x6c, 0x91,
	0x0b, 0xe2, 0x49, 0xd7, 0x35, 0x8f, 0xa6, 0x1c,
	0x72, 0xbd, 0x04, 0xe9, 0x5b, 0x30, 0xc8, 0x17,
	0xf4, 0x6a, 0x9d, 0x23, 0xce, 0x58, 0x81, 0x0f,
}

// encryptValue seals plaintext with nacl/secretbox.
// Output layout: nonce (24 bytes) + ciphertext.
func encryptValue(plaintext []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &embeddedKey), nil
}

// decryptValue opens data produced by encryptValue.
func decryptValue(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 24+secretbox.Overhead {
		return nil, fmt.Errorf("ciphertext too short")
	}
	var nonce [24]byte
	copy(nonce[:], ciphertext[:24])

	plaintext, ok := secretbox.Open(nil, ciphertext[24:], &nonce, &embeddedKey)
	if !ok {
		return nil, fmt.Errorf("decrypt failed")
	}
	return plaintext, nil
}
