package ports

import (
	"context"
	"encoding/json"
)

// CachePolicy decides whether a query may be answered from the response
// cache. Mutations always go to the service.
type CachePolicy string

const (
	CachePolicyRemoteOnly CachePolicy = "remote_only"
	CachePolicyCacheFirst CachePolicy = "cache_first"
	CachePolicyCacheOnly  CachePolicy = "cache_only"
)

// Operation is a single named GraphQL query or mutation.
type Operation struct {
	Name        string
	Document    string
	Variables   map[string]any
	CachePolicy CachePolicy
}

// GraphQLClient executes operations against the entitlements service and
// returns the raw "data" object of the response.
type GraphQLClient interface {
	Query(ctx context.Context, op Operation) (json.RawMessage, error)
	Mutate(ctx context.Context, op Operation) (json.RawMessage, error)
	CacheClearer
}

type CacheClearer interface {
	ClearCache(ctx context.Context) error
}

type cachePolicyKey struct{}

// WithCachePolicy returns a context whose queries use policy.
func WithCachePolicy(ctx context.Context, policy CachePolicy) context.Context {
	return context.WithValue(ctx, cachePolicyKey{}, policy)
}

// CachePolicyFromContext returns the policy set by WithCachePolicy, or
// CachePolicyRemoteOnly when none was set.
func CachePolicyFromContext(ctx context.Context) CachePolicy {
	if policy, ok := ctx.Value(cachePolicyKey{}).(CachePolicy); ok && policy != "" {
		return policy
	}
	return CachePolicyRemoteOnly
}
