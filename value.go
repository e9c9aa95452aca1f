package secretstore

import (
	"crypto/subtle"
	"runtime"
)

// SecretValue is an immutable holder for a secret byte payload. The zero
// value is unset. A set value owns a private copy of its bytes and wipes
// them on Destroy; a cleanup registered with the runtime wipes them as a
// backstop if the value is collected without Destroy having been called.
//
// Copies of a SecretValue share the same buffer; Destroy on any copy
// invalidates all of them. Use Clone for an independently owned value.
type SecretValue struct {
	buf *secretBuf
}

type secretBuf struct {
	data []byte
}

// NewSecretValue returns a set value holding a copy of data. A nil or
// empty slice produces a set, zero-length value, which is distinct from
// the unset zero SecretValue.
func NewSecretValue(data []byte) SecretValue {
	b := &secretBuf{data: make([]byte, len(data))}
	copy(b.data, data)
	runtime.AddCleanup(b, Wipe, b.data)
	return SecretValue{buf: b}
}

// NewSecretValueString returns a set value holding a copy of s. The
// string itself cannot be wiped; prefer NewSecretValue with a byte slice
// the caller can pass to Wipe afterwards.
func NewSecretValueString(s string) SecretValue {
	return NewSecretValue([]byte(s))
}

// IsOk reports whether the value is set. A zero-length value is set.
func (v SecretValue) IsOk() bool {
	return v.buf != nil && v.buf.data != nil
}

// Size returns the payload length in bytes. Unset values report 0.
func (v SecretValue) Size() int {
	if !v.IsOk() {
		return 0
	}
	return len(v.buf.data)
}

// Data returns the payload for reading. It is not NUL-terminated; use
// len, never scan for a terminator. The slice aliases the value's own
// buffer: callers must not modify it and must not retain it past Destroy.
// Unset values return nil.
func (v SecretValue) Data() []byte {
	if !v.IsOk() {
		return nil
	}
	return v.buf.data
}

// Equal reports whether two values are both unset, or both set with
// identical content. The content comparison is constant-time.
func (v SecretValue) Equal(o SecretValue) bool {
	if v.IsOk() != o.IsOk() {
		return false
	}
	if !v.IsOk() {
		return true
	}
	return subtle.ConstantTimeCompare(v.buf.data, o.buf.data) == 1
}

// Clone returns a value with its own copy of the payload. Cloning an
// unset value returns an unset value.
func (v SecretValue) Clone() SecretValue {
	if !v.IsOk() {
		return SecretValue{}
	}
	return NewSecretValue(v.buf.data)
}

// Destroy wipes the payload and releases the buffer. The value and every
// copy of it report not-ok afterwards. Safe to call more than once and
// safe to defer at acquisition, so the wipe runs on every exit path.
func (v SecretValue) Destroy() {
	if v.buf == nil {
		return
	}
	Wipe(v.buf.data)
	v.buf.data = nil
}

// String returns a fixed placeholder so a value printed by accident
// never reveals its content.
func (v SecretValue) String() string {
	return "********"
}

// Wipe overwrites b with zeros. Use it to scrub scratch buffers that
// held sensitive bytes outside of a SecretValue.
func Wipe(b []byte) {
	clear(b)
}
