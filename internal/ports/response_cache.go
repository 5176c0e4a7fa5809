package ports

import "context"

// ResponseCache stores response payloads keyed by operation fingerprint.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
