// Package shared holds helpers used by more than one client package.
package shared

// WipeByteArray zeroes b in place. Passwords read from the terminal go
// through it once they have been handed on. A nil slice is fine.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
