package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Call it on password buffers as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
