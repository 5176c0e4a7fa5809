package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bnema/entitlements-cli/internal/adapters/auth"
	"github.com/bnema/entitlements-cli/internal/adapters/cache/memory"
	rediscache "github.com/bnema/entitlements-cli/internal/adapters/cache/redis"
	tomlcache "github.com/bnema/entitlements-cli/internal/adapters/cache/toml"
	"github.com/bnema/entitlements-cli/internal/adapters/config"
	"github.com/bnema/entitlements-cli/internal/adapters/graphql"
	"github.com/bnema/entitlements-cli/internal/adapters/repo/remote"
	chainstore "github.com/bnema/entitlements-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/entitlements-cli/internal/adapters/secrets/file"
	"github.com/bnema/entitlements-cli/internal/adapters/session"
	"github.com/bnema/entitlements-cli/internal/application"
	"github.com/bnema/entitlements-cli/internal/logging"
	"github.com/bnema/entitlements-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	client     *application.Client
	session    *session.Session
	deviceFlow auth.DeviceFlow
	now        func() time.Time
	closers    []func() error
}

func wireApp(ctx context.Context, opts rootOptions, stderr io.Writer) (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := logging.New(stderr, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store, err := wireSecretStore(cfg.Secrets, logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	clock := ports.SystemClock{}
	flow := auth.DeviceFlow{
		Endpoints: auth.Endpoints{
			Issuer:         cfg.IdentityService.Issuer,
			DeviceCodePath: cfg.IdentityService.DeviceCodePath,
			TokenPath:      cfg.IdentityService.TokenPath,
		},
		ClientID:       cfg.IdentityService.ClientID,
		RequestTimeout: cfg.APIService.RequestTimeout,
		Logger:         logger,
	}

	var refresher session.Refresher
	if cfg.IdentityService.Issuer != "" && cfg.IdentityService.ClientID != "" {
		refresher = flow
	}
	sess := session.New(store, clock, refresher, logger)

	a := &app{
		cfg:        cfg,
		logger:     logger,
		session:    sess,
		deviceFlow: flow,
		now:        time.Now,
	}

	cache, err := a.wireResponseCache(ctx, v, clock)
	if err != nil {
		return nil, fmt.Errorf("wire response cache: %w", err)
	}

	endpoint, err := cfg.Endpoint()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	transport := graphql.Client{
		Endpoint:       endpoint,
		Tokens:         sess,
		Cache:          cache,
		RequestTimeout: cfg.APIService.RequestTimeout,
		Logger:         logger,
	}
	a.client = application.NewClient(sess, remote.NewRepository(transport, logger), transport, logger)

	logger.Debug("wired entitlements client",
		slog.String("endpoint", endpoint),
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.String("secrets_backend", cfg.Secrets.Backend),
	)

	return a, nil
}

func wireSecretStore(cfg config.Secrets, logger *slog.Logger) (ports.SecretStore, error) {
	switch cfg.Backend {
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.Dir), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.PassPrefix, cfg.Dir, logger)
	}
}

func (a *app) wireResponseCache(ctx context.Context, v *viper.Viper, clock ports.Clock) (ports.ResponseCache, error) {
	switch a.cfg.Cache.Backend {
	case config.CacheBackendFile:
		return tomlcache.NewCache(v, clock)
	case config.CacheBackendRedis:
		cache, err := rediscache.Open(ctx, a.cfg.Cache.RedisURL, a.cfg.Cache.KeyPrefix, a.cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, cache.Close)
		return cache, nil
	default:
		return memory.New(a.cfg.Cache.TTL, clock), nil
	}
}

func (a *app) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil

	return errors.Join(errs...)
}
