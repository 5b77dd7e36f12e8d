// Package cache stores fetched dictionary pages so repeated scrapes of the
// same word do not hit the network.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores page bodies by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// PageKey derives a cache key from a lookup URL
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "quranlingo:v1:" + hex.EncodeToString(hash[:])
}
