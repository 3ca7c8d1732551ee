// Package kvstore provides the small persistent key-value layer the
// rest of the application stores its state behind. Values are JSON
// documents; a missing or undecodable value always falls back to a
// caller-supplied default so a corrupt store never breaks startup.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is a string-keyed blob store. Load returns (nil, nil) for a
// missing key. Save fully overwrites the previous value; last write
// wins.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Get decodes the value stored under key into T. Missing keys,
// backend read failures, and undecodable values all yield def.
func Get[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Load(ctx, key)
	if err != nil || raw == nil {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// Set serializes v and writes it under key.
func Set[T any](ctx context.Context, s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
