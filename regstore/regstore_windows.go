//go:build windows

package regstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/billgraziano/dpapi"
	"golang.org/x/sys/windows/registry"

	"github.com/oskeep/secretstore"
)

// Store is a registry-backed secretstore.Backend. Values are encrypted
// with DPAPI before storage.
type Store struct {
	hive    registry.Key
	keyPath string
}

var _ secretstore.Backend = (*Store)(nil)

// Open creates a registry-based store rooted at path.
// Path format: "HIVE\path\to\key" (forward slashes accepted) where HIVE
// is one of:
//   - LM or LOCAL_MACHINE for HKEY_LOCAL_MACHINE (services)
//   - CU or CURRENT_USER for HKEY_CURRENT_USER (user apps)
//
// Example: `LM\SOFTWARE\myapp\secrets` or `CU\SOFTWARE\myapp\secrets`.
func Open(path string) (*Store, error) {
	path = strings.ReplaceAll(path, "/", `\`)

	hiveStr, keyPath, found := strings.Cut(path, `\`)
	if !found {
		return nil, fmt.Errorf("invalid registry path: missing hive prefix (use LM\\ or CU\\)")
	}

	var hive registry.Key
	switch strings.ToUpper(hiveStr) {
	case "LM", "LOCAL_MACHINE":
		hive = registry.LOCAL_MACHINE
	case "CU", "CURRENT_USER":
		hive = registry.CURRENT_USER
	default:
		return nil, fmt.Errorf("invalid registry hive: %s (use LM, LOCAL_MACHINE, CU, or CURRENT_USER)", hiveStr)
	}

	// Create the root key if it doesn't exist.
	key, _, err := registry.CreateKey(hive, keyPath, registry.ALL_ACCESS)
	if err != nil {
		return nil, fmt.Errorf("create registry key: %w", err)
	}
	key.Close()

	return &Store{hive: hive, keyPath: keyPath}, nil
}

// servicePath maps a service name onto a subkey path. Backslashes are
// not legal in key names, so they are folded to forward slashes.
func (s *Store) servicePath(service string) string {
	return s.keyPath + `\` + strings.ReplaceAll(service, `\`, "/")
}

// mapRegistryErr distinguishes an absent key or value, which is the
// expected not-found outcome, from genuine registry failures such as
// access denial, which must surface as errors in their own right.
func mapRegistryErr(err error, op string) error {
	if errors.Is(err, registry.ErrNotExist) {
		return secretstore.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Save creates or overwrites the entry for (service, user).
func (s *Store) Save(service, user string, secret []byte) error {
	enc, err := dpapi.EncryptBytes(secret)
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}

	key, _, err := registry.CreateKey(s.hive, s.servicePath(service), registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("open service key: %w", err)
	}
	defer key.Close()

	return key.SetBinaryValue(user, enc)
}

// Load returns the payload for (service, user), or an error wrapping
// secretstore.ErrNotFound if no entry exists.
func (s *Store) Load(service, user string) ([]byte, error) {
	key, err := registry.OpenKey(s.hive, s.servicePath(service), registry.QUERY_VALUE)
	if err != nil {
		return nil, mapRegistryErr(err, "open service key")
	}
	defer key.Close()

	enc, _, err := key.GetBinaryValue(user)
	if err != nil {
		return nil, mapRegistryErr(err, "read secret value")
	}

	secret, err := dpapi.DecryptBytes(enc)
	if err != nil {
		return nil, fmt.Errorf("decrypt secret: %w", err)
	}
	return secret, nil
}

// Delete removes the entry for (service, user). Returns an error
// wrapping secretstore.ErrNotFound if no entry exists.
func (s *Store) Delete(service, user string) error {
	key, err := registry.OpenKey(s.hive, s.servicePath(service), registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return mapRegistryErr(err, "open service key")
	}
	defer key.Close()

	if _, _, err := key.GetBinaryValue(user); err != nil {
		return mapRegistryErr(err, "read secret value")
	}
	if err := key.DeleteValue(user); err != nil {
		return mapRegistryErr(err, "delete secret value")
	}
	return nil
}

// Path returns the storage location for display purposes.
func (s *Store) Path() string {
	var hiveStr string
	switch s.hive {
	case registry.LOCAL_MACHINE:
		hiveStr = "HKLM"
	case registry.CURRENT_USER:
		hiveStr = "HKCU"
	default:
		hiveStr = "UNKNOWN"
	}
	return hiveStr + `\` + s.keyPath
}

// Close is a no-op; the store holds no persistent registry handle.
func (s *Store) Close() error { return nil }
