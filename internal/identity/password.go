package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest hashes a password with the static salt, hex-encoded. This matches
// the digest already stored for existing users, so it cannot change without
// a migration of the users table.
func Digest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
