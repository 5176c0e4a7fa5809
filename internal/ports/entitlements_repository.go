package ports

import (
	"context"

	"github.com/bnema/entitlements-cli/internal/domain"
)

// EntitlementsRepository performs exactly one remote call per operation and
// reports failures as *domain.Error.
type EntitlementsRepository interface {
	GetEntitlementsConsumption(ctx context.Context) (domain.EntitlementsConsumption, error)
	// Deprecated: use GetEntitlementsConsumption. Returns nil when the user
	// has no entitlements.
	GetEntitlements(ctx context.Context) (*domain.EntitlementsSet, error)
	GetExternalID(ctx context.Context) (string, error)
	RedeemEntitlements(ctx context.Context) (domain.EntitlementsSet, error)
	ConsumeBooleanEntitlements(ctx context.Context, names []string) error
	Resetter
}

// Resetter drops transient state. Reset is idempotent and cannot fail.
type Resetter interface {
	Reset()
}
