package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/entitlements-cli/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, path string) *Cache {
	t.Helper()

	config := viper.New()
	config.Set("cache.path", path)

	cache, err := NewCache(config, nil)
	require.NoError(t, err)
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := newTestCache(t, filepath.Join(t.TempDir(), "cache.toml"))

	payload := []byte(`{"getExternalId":"ext-1","quotes":"\"x\"\n"}`)
	require.NoError(t, cache.Put(ctx, "GetExternalId:abc", payload))
	require.NoError(t, cache.Put(ctx, "Other:def", []byte(`{}`)))

	got, ok, err := cache.Get(ctx, "GetExternalId:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, string(payload), string(got))

	require.NoError(t, cache.Put(ctx, "GetExternalId:abc", []byte(`{"getExternalId":"ext-2"}`)))
	got, ok, err = cache.Get(ctx, "GetExternalId:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"getExternalId":"ext-2"}`, string(got))
}

func TestCacheMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t, filepath.Join(t.TempDir(), "missing", "cache.toml"))

	_, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Clear(context.Background()))
}

func TestCacheClearRemovesFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.toml")
	cache := newTestCache(t, path)

	require.NoError(t, cache.Put(ctx, "k", []byte("v")))
	require.FileExists(t, path)

	require.NoError(t, cache.Clear(ctx))
	assert.NoFileExists(t, path)

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	cache, err := NewCache(viper.New(), nil)
	require.NoError(t, err)
	require.NoError(t, cache.Put(context.Background(), "k", []byte("v")))

	cachePath := filepath.Join(homeDir, ".entitlements", "cache.toml")
	assert.Equal(t, cachePath, cache.Path())
	info, err := os.Stat(cachePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCacheTTLExpiresEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(storedAt).Once()
	clock.EXPECT().Now().Return(storedAt.Add(5 * time.Minute)).Once()

	config := viper.New()
	config.Set("cache.path", filepath.Join(t.TempDir(), "cache.toml"))
	config.Set("cache.ttl", "5m")
	cache, err := NewCache(config, clock)
	require.NoError(t, err)

	require.NoError(t, cache.Put(ctx, "k", []byte("v")))

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.toml")
	require.NoError(t, os.WriteFile(path, []byte("entries = ["), 0o600))

	_, _, err := newTestCache(t, path).Get(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode cache file")
}

func TestCacheFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
		"entries = []",
		"",
	}, "\n")), 0o600))

	_, _, err := newTestCache(t, path).Get(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported cache schema version")
}

func TestCacheCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	cache := newTestCache(t, filepath.Join(t.TempDir(), "cache.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cache.Put(ctx, "k", []byte("v"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCacheConcurrentPutsAcrossInstancesKeepAllEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.toml")
	cacheA := newTestCache(t, path)
	cacheB := newTestCache(t, path)

	const perCacheWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perCacheWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(cache *Cache, prefix string) {
		defer wg.Done()
		<-start
		for i := range perCacheWrites {
			errCh <- cache.Put(context.Background(), fmt.Sprintf("%s-%d", prefix, i), []byte("v"))
		}
	}
	go write(cacheA, "a")
	go write(cacheB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	for i := range perCacheWrites {
		for _, prefix := range []string{"a", "b"} {
			_, ok, err := cacheA.Get(context.Background(), fmt.Sprintf("%s-%d", prefix, i))
			require.NoError(t, err)
			assert.True(t, ok)
		}
	}
}
