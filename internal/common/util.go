package common

// WipeByteArray overwrites b with zeros. Used to drop passwords from memory
// once they have been sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ValueOrDash renders empty strings as "-" for console output.
func ValueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
