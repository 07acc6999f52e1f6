// Package kv is the persistence port of the note store: a string-valued
// key-value slot abstraction plus its adapters.
package kv

import "context"

// Storage reads and writes string values under string keys.
type Storage interface {
	// Get returns the value under key. ok is false if the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key, value string) error
}
