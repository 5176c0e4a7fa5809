package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/entitlements-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	cachePathKey    = "cache.path"
	cacheTTLKey     = "cache.ttl"
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	cacheConfigDir  = ".entitlements"
	cacheConfigFile = "cache.toml"
	tempFilePattern = ".cache-*.toml.tmp"
)

// Cache persists responses in a TOML file so they survive between CLI runs.
type Cache struct {
	cachePath string
	ttl       time.Duration
	clock     ports.Clock
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ResponseCache = (*Cache)(nil)

func NewCache(cfg *viper.Viper, clock ports.Clock) (*Cache, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(cachePathKey, filepath.Join(homeDir, cacheConfigDir, cacheConfigFile))

	cachePath := cfg.GetString(cachePathKey)
	if cachePath == "" {
		return nil, errors.New("cache path is empty")
	}
	cachePath, err = normalizeCachePath(cachePath)
	if err != nil {
		return nil, err
	}

	return &Cache{
		cachePath: cachePath,
		ttl:       cfg.GetDuration(cacheTTLKey),
		clock:     clock,
		mu:        lockForPath(cachePath),
	}, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := c.readSchema()
	if err != nil {
		return nil, false, err
	}

	for _, entry := range file.Entries {
		if entry.Key != key {
			continue
		}
		if c.expired(entry) {
			return nil, false, nil
		}
		return []byte(entry.Payload), true, nil
	}

	return nil, false, nil
}

func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := c.readSchema()
	if err != nil {
		return err
	}

	encoded := entrySchema{Key: key, Payload: string(value), StoredAt: formatTime(c.clock.Now())}
	entries := make([]entrySchema, 0, len(file.Entries)+1)
	for _, entry := range file.Entries {
		if entry.Key == key || c.expired(entry) {
			continue
		}
		entries = append(entries, entry)
	}
	file.Entries = append(entries, encoded)

	if err := ctx.Err(); err != nil {
		return err
	}

	return c.writeSchema(file)
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}

	return nil
}

func (c *Cache) Path() string {
	return c.cachePath
}

func (c *Cache) expired(entry entrySchema) bool {
	if c.ttl <= 0 {
		return false
	}
	storedAt := parseTime(entry.StoredAt)
	if storedAt.IsZero() {
		return true
	}

	return c.clock.Now().Sub(storedAt) >= c.ttl
}

func (c *Cache) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read cache file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode cache file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (c *Cache) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(c.cachePath), cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(c.cachePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, c.cachePath); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeCachePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}
