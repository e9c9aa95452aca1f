// Package filestore implements a file-backed secretstore.Backend using
// a bbolt database. It serves hosts with no OS credential facility, such
// as headless servers without a Secret Service daemon.
//
// Entries are encrypted at rest: Windows DPAPI on Windows, nacl/secretbox
// with an embedded key elsewhere. The embedded key provides obfuscation
// rather than strong security; anyone with the binary can extract it. The
// goal is to keep secrets out of plain text on disk.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"go.etcd.io/bbolt"

	"github.com/oskeep/secretstore"
)

// record is the stored form of one entry. The user is the bucket key;
// only the payload and bookkeeping live in the value.
type record struct {
	Secret  []byte    `cbor:"secret"`
	Updated time.Time `cbor:"updated"`
}

// Store persists secrets in a bbolt database, one bucket per service,
// one key per user. Safe for concurrent use within a single process;
// bbolt's file lock excludes other processes.
type Store struct {
	db *bbolt.DB
}

var _ secretstore.Backend = (*Store)(nil)

// Open opens or creates the database at path, creating parent
// directories as needed. The file is created with mode 0600.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	path = os.Expand(path, os.Getenv)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save creates or overwrites the entry for (service, user).
func (s *Store) Save(service, user string, secret []byte) error {
	plain, err := cbor.Marshal(record{Secret: secret, Updated: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	defer secretstore.Wipe(plain)

	enc, err := encryptValue(plain)
	if err != nil {
		return fmt.Errorf("encrypt record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(service))
		if err != nil {
			return fmt.Errorf("create service bucket: %w", err)
		}
		return b.Put([]byte(user), enc)
	})
}

// Load returns the payload for (service, user), or an error wrapping
// secretstore.ErrNotFound if no entry exists.
func (s *Store) Load(service, user string) ([]byte, error) {
	var enc []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(service))
		if b == nil {
			return secretstore.ErrNotFound
		}
		v := b.Get([]byte(user))
		if v == nil {
			return secretstore.ErrNotFound
		}
		// Copy out: bbolt memory is only valid inside the transaction.
		enc = make([]byte, len(v))
		copy(enc, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plain, err := decryptValue(enc)
	if err != nil {
		return nil, fmt.Errorf("decrypt record: %w", err)
	}
	defer secretstore.Wipe(plain)

	var rec record
	if err := cbor.Unmarshal(plain, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec.Secret, nil
}

// Delete removes the entry for (service, user). Returns an error
// wrapping secretstore.ErrNotFound if no entry exists. An emptied
// service bucket is removed with its last entry.
func (s *Store) Delete(service, user string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(service))
		if b == nil {
			return secretstore.ErrNotFound
		}
		if b.Get([]byte(user)) == nil {
			return secretstore.ErrNotFound
		}
		if err := b.Delete([]byte(user)); err != nil {
			return err
		}
		if k, _ := b.Cursor().First(); k == nil {
			return tx.DeleteBucket([]byte(service))
		}
		return nil
	})
}

// Path returns the database file location for display purposes.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
