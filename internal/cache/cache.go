package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FreshnessWindow is how long a stored response may be served.
const FreshnessWindow = time.Hour

// Store is a key/value store of response bodies with per-entry expiry.
// Get reports ok=false for missing and expired entries alike.
type Store interface {
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Key hashes a clear-text request signature into a fixed-length storage key.
// Signatures carry the API key, so they are never stored verbatim.
func Key(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(sum[:])
}
