package common

// WipeByteArray zeroes the given buffer in place. Callers use it to clear
// password bytes as soon as they are no longer needed. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
