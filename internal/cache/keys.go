package cache

import "time"

// Cache TTLs.
const (
	ThreadDetailTTL = 30 * time.Second
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ThreadDetailKey returns the cache key for an assembled thread detail view.
func ThreadDetailKey(threadID string) string {
	return "thread:detail:" + threadID
}

// RefreshTokenKey returns the storage key for a refresh token.
func RefreshTokenKey(token string) string {
	return "auth:refresh:" + token
}
