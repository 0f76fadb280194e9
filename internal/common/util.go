// Package common holds small helpers shared across the client packages.
package common

// WipeByteArray zeroes b in place. Use it on passwords once they have been
// sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
