//go:build windows

package filestore

import (
	"github.com/billgraziano/dpapi"
)

// encryptValue seals plaintext with Windows DPAPI under the current
// user's credentials.
func encryptValue(plaintext []byte) ([]byte, error) {
	return dpapi.EncryptBytes(plaintext)
}

// decryptValue opens data produced by encryptValue.
func decryptValue(ciphertext []byte) ([]byte, error) {
	return dpapi.DecryptBytes(ciphertext)
}
