package application

import (
	"context"
	"log/slog"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
)

// Client is the entry point for entitlements operations. Every operation
// except Reset requires a signed-in session.
type Client struct {
	session   ports.SessionClient
	useCases  UseCaseFactory
	resetters []ports.Resetter
	cache     ports.CacheClearer
	logger    *slog.Logger
}

func NewClient(session ports.SessionClient, repo ports.EntitlementsRepository, cache ports.CacheClearer, logger *slog.Logger) *Client {
	return NewClientWithFactory(session, NewUseCaseFactory(repo), []ports.Resetter{repo}, cache, logger)
}

// NewClientWithFactory builds a client over an explicit use case factory.
// resetters are reset in order by Reset before the cache is cleared.
func NewClientWithFactory(session ports.SessionClient, useCases UseCaseFactory, resetters []ports.Resetter, cache ports.CacheClearer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		session:   session,
		useCases:  useCases,
		resetters: resetters,
		cache:     cache,
		logger:    logger,
	}
}

func (c *Client) GetEntitlementsConsumption(ctx context.Context) (domain.EntitlementsConsumption, error) {
	if err := c.ensureSignedIn(ctx, "get_entitlements_consumption"); err != nil {
		return domain.EntitlementsConsumption{}, err
	}

	return c.useCases.GetEntitlementsConsumption().Execute(ctx)
}

// Deprecated: use GetEntitlementsConsumption.
func (c *Client) GetEntitlements(ctx context.Context) (*domain.EntitlementsSet, error) {
	if err := c.ensureSignedIn(ctx, "get_entitlements"); err != nil {
		return nil, err
	}

	return c.useCases.GetEntitlements().Execute(ctx)
}

func (c *Client) GetExternalID(ctx context.Context) (string, error) {
	if err := c.ensureSignedIn(ctx, "get_external_id"); err != nil {
		return "", err
	}

	return c.useCases.GetExternalID().Execute(ctx)
}

func (c *Client) RedeemEntitlements(ctx context.Context) (domain.EntitlementsSet, error) {
	if err := c.ensureSignedIn(ctx, "redeem_entitlements"); err != nil {
		return domain.EntitlementsSet{}, err
	}

	return c.useCases.RedeemEntitlements().Execute(ctx)
}

func (c *Client) ConsumeBooleanEntitlements(ctx context.Context, names []string) error {
	if err := c.ensureSignedIn(ctx, "consume_boolean_entitlements"); err != nil {
		return err
	}

	return c.useCases.ConsumeBooleanEntitlements().Execute(ctx, ConsumeBooleanEntitlementsCommand{Names: names})
}

// Reset drops every resetter's transient state and then clears the
// transport cache. Only the cache clear can fail.
func (c *Client) Reset(ctx context.Context) error {
	for _, r := range c.resetters {
		r.Reset()
	}

	if c.cache == nil {
		return nil
	}
	return c.cache.ClearCache(ctx)
}

// ensureSignedIn returns the session error unchanged so callers can tell a
// broken session from a missing one.
func (c *Client) ensureSignedIn(ctx context.Context, operation string) error {
	signedIn, err := c.session.IsSignedIn(ctx)
	if err != nil {
		return err
	}
	if !signedIn {
		c.logger.DebugContext(ctx, "not signed in", slog.String("operation", operation))
		return domain.ErrNotSignedIn
	}

	return nil
}
