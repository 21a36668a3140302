package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Well-known keys of the durable collections.
const (
	KeyUsers     = "users"
	KeyFavorites = "favorites"
	KeyOrders    = "orders"
)

var ErrInvalidKey = errors.New("invalid storage key")

var keyPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// Store is a durable string key-value store. Get reports found=false for a
// missing key instead of returning an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// GetJSON decodes the value under key into v. It returns false when the key
// is absent, leaving v untouched.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}
