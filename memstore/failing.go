package memstore

import "github.com/oskeep/secretstore"

// ErrBackend is a secretstore.Backend that fails every operation with a
// fixed error. It exists to exercise failure handling in callers.
type ErrBackend struct {
	Err error
}

var _ secretstore.Backend = ErrBackend{}

func (b ErrBackend) Save(service, user string, secret []byte) error { return b.Err }
func (b ErrBackend) Load(service, user string) ([]byte, error)      { return nil, b.Err }
func (b ErrBackend) Delete(service, user string) error              { return b.Err }
func (b ErrBackend) Close() error                                   { return nil }
