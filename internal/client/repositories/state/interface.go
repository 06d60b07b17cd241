// Package state persists small string key-value pairs (session credentials,
// login instant) across client restarts.
package state

import "context"

// Repository is the durable key-value store the session controller writes.
// Get returns an empty string (and nil error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
