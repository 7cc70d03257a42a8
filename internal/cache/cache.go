package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/vpetrenko/specsheet/internal/model"
)

// Cache defines the interface for caching fetched record sets.
type Cache interface {
	Get(key string) ([]model.Record, bool)
	Set(key string, records []model.Record, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key generates a cache key for a table within a row store.
func Key(storeID, table string) string {
	hash := sha256.Sum256([]byte(storeID + "\x00" + table))
	return "specsheet:v1:" + hex.EncodeToString(hash[:])
}
