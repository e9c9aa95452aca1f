//go:build !windows

package secretstore

func decodeKeyringValue(s string) []byte {
	return []byte(s)
}
