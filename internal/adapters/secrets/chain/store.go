package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	filestore "github.com/bnema/entitlements-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/entitlements-cli/internal/adapters/secrets/pass"
	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
)

// Store reads and writes through a primary backend and falls back to a
// second one when the primary is unusable. Deletes hit both backends so
// signing out never leaves a stale copy behind.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func New(primary ports.SecretStore, fallback ports.SecretStore, logger *slog.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{primary: primary, fallback: fallback, logger: logger}, nil
}

func NewPassFirstWithFileFallback(passPrefix string, fileRoot string, logger *slog.Logger) (*Store, error) {
	return New(passstore.NewStore(passPrefix), filestore.NewStore(fileRoot), logger)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.logger.WarnContext(ctx, "primary secret backend rejected write, using fallback", slog.String("key", key), slog.Any("error", err))
	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("put secret %q: %w", key, errors.Join(err, fallbackErr))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		s.logger.DebugContext(ctx, "secret served by fallback backend", slog.String("key", key))
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(err, fallbackErr))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	if joined := errors.Join(err, s.fallback.Delete(ctx, key)); joined != nil {
		return fmt.Errorf("delete secret %q: %w", key, joined)
	}

	return nil
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
