package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ybensalah/mawarith/internal/model"
)

// Cache defines the interface for caching computed divisions
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DivisionKey derives a cache key from a family tree fingerprint and the
// doctrine it was computed under. Same tree, same doctrine, same result.
func DivisionKey(fingerprint, doctrine string) string {
	hash := sha256.Sum256([]byte(doctrine + ":" + fingerprint))
	return "mawarith:v1:" + hex.EncodeToString(hash[:])
}

// EncodeDivision serializes a division for storage
func EncodeDivision(d *model.EstateDivision) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode division: %w", err)
	}
	return data, nil
}

// DecodeDivision restores a stored division
func DecodeDivision(data []byte) (*model.EstateDivision, error) {
	var d model.EstateDivision
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode division: %w", err)
	}
	return &d, nil
}
