package credential

import "context"

// Repository defines persistence for the API key list. The store holds one
// flat, ordered list: every mutation of the pool rewrites it wholesale and it
// is read back once at startup.
type Repository interface {
	// Replace overwrites the stored key list with the given one
	Replace(ctx context.Context, keys []string) error

	// Load returns the stored keys in their persisted order
	Load(ctx context.Context) ([]string, error)
}
