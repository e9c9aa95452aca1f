// Package memstore provides an in-memory secretstore.Backend for tests
// and for non-persistent stores that must not outlive the process.
package memstore

import (
	"sync"

	"github.com/oskeep/secretstore"
)

// entry holds one stored secret. A service may hold several entries for
// the same user when they are injected directly, mirroring the duplicate
// state external tooling can create in a native store.
type entry struct {
	user   string
	secret []byte
}

// Backend is an in-memory implementation of secretstore.Backend.
// The zero value is ready to use. Safe for concurrent use. Stored
// payloads are wiped when overwritten, deleted, or released by Close.
type Backend struct {
	mu      sync.RWMutex
	entries map[string][]entry // keyed by service, nil until first write
}

var _ secretstore.Backend = (*Backend)(nil)

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{entries: make(map[string][]entry)}
}

// Save creates the entry for (service, user) or overwrites the first
// existing match.
func (m *Backend) Save(service, user string, secret []byte) error {
	cp := make([]byte, len(secret))
	copy(cp, secret)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]entry)
	}
	list := m.entries[service]
	for i := range list {
		if list[i].user == user {
			secretstore.Wipe(list[i].secret)
			list[i].secret = cp
			return nil
		}
	}
	m.entries[service] = append(list, entry{user: user, secret: cp})
	return nil
}

// Load returns a copy of the payload for (service, user). With several
// matching entries, whichever was stored first wins; callers must not
// rely on that ordering.
func (m *Backend) Load(service, user string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries[service] {
		if e.user == user {
			cp := make([]byte, len(e.secret))
			copy(cp, e.secret)
			return cp, nil
		}
	}
	return nil, secretstore.ErrNotFound
}

// Delete removes every entry matching (service, user), wiping each
// payload. Returns secretstore.ErrNotFound when nothing matched.
func (m *Backend) Delete(service, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.entries[service]
	kept := list[:0]
	removed := 0
	for _, e := range list {
		if e.user == user {
			secretstore.Wipe(e.secret)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return secretstore.ErrNotFound
	}
	if len(kept) == 0 {
		delete(m.entries, service)
	} else {
		m.entries[service] = kept
	}
	return nil
}

// Close wipes and drops every stored payload.
func (m *Backend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for service, list := range m.entries {
		for _, e := range list {
			secretstore.Wipe(e.secret)
		}
		delete(m.entries, service)
	}
	return nil
}

// Inject appends an entry without replacing an existing one, creating
// the duplicate (service, user) state that is otherwise only reachable
// through external tooling.
func (m *Backend) Inject(service, user string, secret []byte) {
	cp := make([]byte, len(secret))
	copy(cp, secret)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]entry)
	}
	m.entries[service] = append(m.entries[service], entry{user: user, secret: cp})
}

// Len reports the total number of stored entries across all services.
func (m *Backend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, list := range m.entries {
		n += len(list)
	}
	return n
}
