// Package store defines the key-value persistence surface backing the
// application. Collections are stored as whole JSON documents under named
// keys, mirroring the browser-local storage layout this service replaces.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known store keys.
const (
	KeyUsers           = "users"
	KeyTasks           = "tasks"
	KeyCurrentUser     = "currentUser"
	KeyContactMessages = "contactMessages"
)

// ErrKeyNotFound is returned when a key has no value in the store.
var ErrKeyNotFound = errors.New("key not found")

// Store is a named-key JSON document store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads the value at key and unmarshals it into v.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and writes it at key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
