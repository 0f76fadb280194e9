// Package metadata stores the client's small key/value state (the logged-in
// session) in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get returns ("", false, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
