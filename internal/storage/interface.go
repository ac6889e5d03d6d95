// Package storage defines the key-value persistence contract the player data
// store writes through, plus the backends that implement it.
package storage

import (
	"context"
	"errors"

	"github.com/mcoot/protocasual/internal/model"
)

// Backend is a flat key-value persistence capability.
// Load returns model.ErrKeyNotFound when the key is absent.
type Backend interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	HasKey(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	Close() error
}

// LoadOrDefault returns the stored value for key, or def if it does not exist
func LoadOrDefault(ctx context.Context, b Backend, key string, def []byte) ([]byte, error) {
	v, err := b.Load(ctx, key)
	if errors.Is(err, model.ErrKeyNotFound) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateKey rejects keys no backend can address
func ValidateKey(key string) error {
	if key == "" {
		return model.ErrInvalidKey
	}
	return nil
}
