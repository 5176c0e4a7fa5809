package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
	"github.com/google/uuid"
)

// Repository implements ports.EntitlementsRepository over a GraphQL client.
// Each operation issues exactly one query or mutation and never retries.
type Repository struct {
	client ports.GraphQLClient
	logger *slog.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]string
}

var _ ports.EntitlementsRepository = (*Repository)(nil)

func NewRepository(client ports.GraphQLClient, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Repository{
		client:  client,
		logger:  logger,
		pending: map[uuid.UUID]string{},
	}
}

func (r *Repository) GetEntitlementsConsumption(ctx context.Context) (domain.EntitlementsConsumption, error) {
	var data getEntitlementsConsumptionData
	op := newQuery(ctx, OperationGetEntitlementsConsumption, getEntitlementsConsumptionDocument)
	if err := r.execute(ctx, r.client.Query, op, &data); err != nil {
		return domain.EntitlementsConsumption{}, err
	}
	if data.GetEntitlementsConsumption == nil {
		return domain.EntitlementsConsumption{}, domain.ErrServiceError
	}

	return fromEntitlementsConsumptionSchema(*data.GetEntitlementsConsumption), nil
}

// Deprecated: use GetEntitlementsConsumption. A missing payload means the
// user has no entitlements and yields (nil, nil).
func (r *Repository) GetEntitlements(ctx context.Context) (*domain.EntitlementsSet, error) {
	var data getEntitlementsData
	op := newQuery(ctx, OperationGetEntitlements, getEntitlementsDocument)
	if err := r.execute(ctx, r.client.Query, op, &data); err != nil {
		return nil, err
	}
	if data.GetEntitlements == nil {
		return nil, nil
	}

	set := fromEntitlementsSetSchema(*data.GetEntitlements)
	return &set, nil
}

func (r *Repository) GetExternalID(ctx context.Context) (string, error) {
	var data getExternalIDData
	op := newQuery(ctx, OperationGetExternalID, getExternalIDDocument)
	if err := r.execute(ctx, r.client.Query, op, &data); err != nil {
		return "", err
	}
	if data.GetExternalID == nil {
		return "", domain.ErrServiceError
	}

	return *data.GetExternalID, nil
}

func (r *Repository) RedeemEntitlements(ctx context.Context) (domain.EntitlementsSet, error) {
	var data redeemEntitlementsData
	op := newOperation(OperationRedeemEntitlements, redeemEntitlementsDocument, nil)
	if err := r.execute(ctx, r.client.Mutate, op, &data); err != nil {
		return domain.EntitlementsSet{}, err
	}
	if data.RedeemEntitlements == nil {
		return domain.EntitlementsSet{}, domain.ErrServiceError
	}

	return fromEntitlementsSetSchema(*data.RedeemEntitlements), nil
}

// ConsumeBooleanEntitlements does not check names; the service rejects an
// empty list.
func (r *Repository) ConsumeBooleanEntitlements(ctx context.Context, names []string) error {
	var data consumeBooleanEntitlementsData
	op := newOperation(OperationConsumeBooleanEntitlements, consumeBooleanEntitlementsDocument, map[string]any{
		"entitlementNames": names,
	})

	return r.execute(ctx, r.client.Mutate, op, &data)
}

// Reset forgets operations still in flight. Requests already sent are not
// aborted.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) > 0 {
		r.logger.Debug("forgetting pending entitlements operations", slog.Int("count", len(r.pending)))
	}
	r.pending = map[uuid.UUID]string{}
}

// Pending returns the number of operations in flight.
func (r *Repository) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

type dispatchFunc func(ctx context.Context, op ports.Operation) (json.RawMessage, error)

func (r *Repository) execute(ctx context.Context, dispatch dispatchFunc, op ports.Operation, out any) error {
	id := r.track(op.Name)
	defer r.untrack(id)

	started := time.Now()
	raw, err := dispatch(ctx, op)
	r.logger.DebugContext(ctx, "entitlements operation finished",
		slog.String("operation", op.Name),
		slog.String("operation_id", id.String()),
		slog.Duration("duration", time.Since(started)),
		slog.Bool("failed", err != nil),
	)
	if err != nil {
		return domain.FromTransportError(err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewFatalError(fmt.Sprintf("decode %s response: %v", op.Name, err))
	}

	return nil
}

func (r *Repository) track(name string) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[id] = name

	return id
}

func (r *Repository) untrack(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
}
