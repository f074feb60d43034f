package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a short SHA-256 digest of a contact detail so log
// lines can be correlated without writing the detail itself.
func Fingerprint(value string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(value), ""))
	if normalized == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:12]
}
