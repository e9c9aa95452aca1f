package secretstore

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

// keyringBackend is the platform default Backend. It delegates to the
// OS credential facility through go-keyring: the Credential Manager on
// Windows, the Keychain on macOS, and the freedesktop Secret Service
// elsewhere. It holds no native handles of its own.
type keyringBackend struct{}

var _ Backend = keyringBackend{}

// defaultOpen is a variable so tests can substitute a backend.
var defaultOpen = openPlatformDefault

// The availability probe looks up a key that is expected to be absent.
// A not-found answer proves the facility is reachable; anything else
// (no daemon, unsupported platform) means there is no default store.
const (
	probeService = "org.oskeep.secretstore.probe"
	probeUser    = "probe"
)

var (
	probeOnce sync.Once
	probeErr  error
)

func openPlatformDefault() (Backend, error) {
	probeOnce.Do(func() {
		_, err := keyring.Get(probeService, probeUser)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			probeErr = err
		}
	})
	if probeErr != nil {
		return nil, probeErr
	}
	return keyringBackend{}, nil
}

func (keyringBackend) Save(service, user string, secret []byte) error {
	return keyring.Set(service, user, string(secret))
}

func (keyringBackend) Load(service, user string) ([]byte, error) {
	s, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeKeyringValue(s), nil
}

func (keyringBackend) Delete(service, user string) error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (keyringBackend) Close() error { return nil }
