package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
	"time"
)

// PrefixDigest namespaces artifact digest entries
const PrefixDigest = "digest"

// generateKey hashes an arbitrary identity string into a fixed-size key
func generateKey(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix, identity string) string {
	return prefix + ":" + generateKey(identity)
}

// DigestKey identifies one revision of an artifact. Any change of path,
// size or modification time yields a different key.
func DigestKey(checksumType, path string, size int64, modTime time.Time) string {
	identity := checksumType + "\x00" +
		filepath.Clean(path) + "\x00" +
		strconv.FormatInt(size, 10) + "\x00" +
		strconv.FormatInt(modTime.UnixNano(), 10)
	return GenerateKeyWithPrefix(PrefixDigest, identity)
}
