package utils

import "bytes"

// PayloadsEqual reports whether two serialized payloads are byte-identical.
// Byte identity is the definition of "unchanged" the reconciler uses when
// comparing staging content against the mirror.
func PayloadsEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
