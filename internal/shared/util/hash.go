package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns a stable content address for extracted document
// text. Digest cache entries are keyed by this value.
func HashContent(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
