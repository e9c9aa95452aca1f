// Package secretstore stores and retrieves small secrets (passwords,
// tokens, API keys) using the operating system's native credential
// facility. It supplies no cryptography of its own; protection at rest
// is whatever the platform provides.
//
// # Values
//
// A SecretValue holds one secret payload and wipes its backing memory
// when destroyed. The zero SecretValue is unset, which is not the same
// as a set value of zero length (an empty password is still a password).
//
// # Stores
//
// A Store is a handle to a secret collection, sometimes called a key
// chain. GetDefault returns a handle to the platform's default facility:
// the Credential Manager on Windows, the Keychain on macOS, and the
// freedesktop Secret Service on Linux and the BSDs. On platforms with no
// usable facility GetDefault returns an invalid handle; check IsOk.
//
// Secrets are keyed by a (service, user) pair. The service name should
// be readable and unique to the owning application; user identifies an
// account within it.
//
// # Backends
//
// The Backend interface decouples the handle from the platform client.
// Alternative backends live in subpackages: filestore (bbolt database,
// encrypted at rest, for headless hosts), regstore (Windows registry
// with DPAPI, for system services), and memstore (in-memory, for tests).
// NewStore wraps any Backend in a handle.
//
// # Failure reporting
//
// Operations report success as a boolean. Genuine backend failures emit
// one diagnostic line through a zerolog logger (see SetLogger); a lookup
// or delete that finds nothing is an expected outcome and is silent.
//
// Calls may block on native services, including user authorization
// prompts, for an unbounded time. Callers needing responsiveness should
// run them from their own goroutine. Concurrent use of one backend is
// safe only if the backend documents it.
package secretstore
