package secretstore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by backends when no entry matches a
// (service, user) pair. The store layer treats it as an expected
// outcome and never logs it.
var ErrNotFound = errors.New("secret not found")

// Backend persists secret payloads keyed by (service, user). One
// implementation exists per storage facility; the handle layer treats
// them interchangeably. Implementations report absence by returning an
// error wrapping ErrNotFound; any other error is a genuine failure.
type Backend interface {
	// Save creates the entry for (service, user) or overwrites an
	// existing one. Absence before the write is not a failure.
	Save(service, user string, secret []byte) error

	// Load returns the payload stored for (service, user). If more than
	// one entry matches, which one is returned is unspecified.
	Load(service, user string) ([]byte, error)

	// Delete removes every entry matching (service, user). Returns an
	// error wrapping ErrNotFound when nothing matched.
	Delete(service, user string) error

	// Close releases any native resources held by the backend. It is
	// called once, when the last store handle referencing the backend
	// is closed.
	Close() error
}

// Store is a handle to a secret collection, sometimes called a key
// chain. Handles are created by GetDefault or NewStore, never by the
// zero value: a zero Store reports IsOk false and every operation on it
// is a safe no-op returning failure.
//
// Copy produces handles sharing the same backend. The backend is closed
// when the last handle referencing it is closed.
type Store struct {
	ref *backendRef
}

// backendRef carries the shared backend and its reference count.
type backendRef struct {
	mu      sync.Mutex
	backend Backend
	count   int
}

// GetDefault returns a handle to the platform's default secret storage
// facility. If the running platform has no usable facility the returned
// handle reports IsOk false; that condition is not an error and is not
// logged.
func GetDefault() Store {
	b, err := defaultOpen()
	if err != nil {
		return Store{}
	}
	return NewStore(b)
}

// NewStore wraps backend in a store handle. The handle takes ownership:
// backend.Close runs when the last handle referencing it is closed.
// A nil backend yields an invalid handle.
func NewStore(backend Backend) Store {
	if backend == nil {
		return Store{}
	}
	return Store{ref: &backendRef{backend: backend, count: 1}}
}

// Copy returns a new handle referencing the same backend. Each handle,
// including the copies, must be closed exactly once. Copying an invalid
// or closed handle yields an invalid handle.
func (s Store) Copy() Store {
	if s.ref == nil {
		return Store{}
	}
	s.ref.mu.Lock()
	defer s.ref.mu.Unlock()
	if s.ref.backend == nil {
		return Store{}
	}
	s.ref.count++
	return Store{ref: s.ref}
}

// Close releases this handle's reference to the backend and closes the
// backend itself when no references remain. Closing an invalid handle
// is a no-op.
func (s Store) Close() error {
	if s.ref == nil {
		return nil
	}
	s.ref.mu.Lock()
	if s.ref.backend == nil {
		s.ref.mu.Unlock()
		return nil
	}
	s.ref.count--
	if s.ref.count > 0 {
		s.ref.mu.Unlock()
		return nil
	}
	b := s.ref.backend
	s.ref.backend = nil
	s.ref.mu.Unlock()
	return b.Close()
}

// IsOk reports whether the handle references a live backend.
func (s Store) IsOk() bool {
	return s.backend() != nil
}

func (s Store) backend() Backend {
	if s.ref == nil {
		return nil
	}
	s.ref.mu.Lock()
	defer s.ref.mu.Unlock()
	return s.ref.backend
}

// Save stores secret under (service, user), overwriting any existing
// entry. Returns true on success. A genuine backend failure returns
// false and emits one diagnostic line.
func (s Store) Save(service, user string, secret SecretValue) bool {
	b := s.backend()
	if b == nil {
		return false
	}
	if !secret.IsOk() {
		logger.Error().Str("service", service).Str("user", user).
			Msg("cannot save an unset secret value")
		return false
	}
	if err := b.Save(service, user, secret.Data()); err != nil {
		logger.Error().Err(err).Str("service", service).Str("user", user).
			Msg("saving secret failed")
		return false
	}
	return true
}

// Load returns the secret stored under (service, user). If nothing
// matches, the result is unset and nothing is logged. If more than one
// entry matches (a state only reachable through external tooling),
// an arbitrary one is returned. The caller owns the result and should
// Destroy it when done.
func (s Store) Load(service, user string) SecretValue {
	b := s.backend()
	if b == nil {
		return SecretValue{}
	}
	data, err := b.Load(service, user)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Str("service", service).Str("user", user).
				Msg("loading secret failed")
		}
		return SecretValue{}
	}
	v := NewSecretValue(data)
	Wipe(data)
	return v
}

// Delete removes every entry matching (service, user). Returns true if
// one or more entries were deleted. A zero-match delete returns false
// silently; a genuine backend failure returns false and emits one
// diagnostic line.
func (s Store) Delete(service, user string) bool {
	b := s.backend()
	if b == nil {
		return false
	}
	if err := b.Delete(service, user); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Str("service", service).Str("user", user).
				Msg("deleting secret failed")
		}
		return false
	}
	return true
}
