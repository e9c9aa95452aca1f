//go:build windows

package secretstore

// Credentials written by cmdkey carry a UTF-16 legacy: a NUL byte after
// every character. Undo that mangling only when the whole blob matches
// the pattern (even length, every odd-indexed byte NUL); anything else
// is a payload this package stored verbatim and must pass through
// untouched.
func decodeKeyringValue(s string) []byte {
	b := []byte(s)
	if len(b) == 0 || len(b)%2 != 0 {
		return b
	}
	for i := 1; i < len(b); i += 2 {
		if b[i] != 0 {
			return b
		}
	}
	out := make([]byte, len(b)/2)
	for i := range out {
		out[i] = b[2*i]
	}
	return out
}
