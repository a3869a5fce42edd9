package common

// WipeByteArray overwrites the slice contents with zeros. Used to scrub
// passwords from memory once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
