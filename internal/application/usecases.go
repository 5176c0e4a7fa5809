package application

import (
	"context"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
)

// Use cases are thin seams over the repository. Each Execute makes exactly
// one repository call and returns its result untouched.

type GetEntitlementsConsumptionUseCase interface {
	Execute(ctx context.Context) (domain.EntitlementsConsumption, error)
}

type GetEntitlementsUseCase interface {
	Execute(ctx context.Context) (*domain.EntitlementsSet, error)
}

type GetExternalIDUseCase interface {
	Execute(ctx context.Context) (string, error)
}

type RedeemEntitlementsUseCase interface {
	Execute(ctx context.Context) (domain.EntitlementsSet, error)
}

type ConsumeBooleanEntitlementsUseCase interface {
	Execute(ctx context.Context, cmd ConsumeBooleanEntitlementsCommand) error
}

// UseCaseFactory builds one use case per call.
type UseCaseFactory interface {
	GetEntitlementsConsumption() GetEntitlementsConsumptionUseCase
	GetEntitlements() GetEntitlementsUseCase
	GetExternalID() GetExternalIDUseCase
	RedeemEntitlements() RedeemEntitlementsUseCase
	ConsumeBooleanEntitlements() ConsumeBooleanEntitlementsUseCase
}

type repositoryUseCaseFactory struct {
	repo ports.EntitlementsRepository
}

func NewUseCaseFactory(repo ports.EntitlementsRepository) UseCaseFactory {
	return repositoryUseCaseFactory{repo: repo}
}

func (f repositoryUseCaseFactory) GetEntitlementsConsumption() GetEntitlementsConsumptionUseCase {
	return getEntitlementsConsumption{repo: f.repo}
}

func (f repositoryUseCaseFactory) GetEntitlements() GetEntitlementsUseCase {
	return getEntitlements{repo: f.repo}
}

func (f repositoryUseCaseFactory) GetExternalID() GetExternalIDUseCase {
	return getExternalID{repo: f.repo}
}

func (f repositoryUseCaseFactory) RedeemEntitlements() RedeemEntitlementsUseCase {
	return redeemEntitlements{repo: f.repo}
}

func (f repositoryUseCaseFactory) ConsumeBooleanEntitlements() ConsumeBooleanEntitlementsUseCase {
	return consumeBooleanEntitlements{repo: f.repo}
}

type getEntitlementsConsumption struct {
	repo ports.EntitlementsRepository
}

func (u getEntitlementsConsumption) Execute(ctx context.Context) (domain.EntitlementsConsumption, error) {
	return u.repo.GetEntitlementsConsumption(ctx)
}

type getEntitlements struct {
	repo ports.EntitlementsRepository
}

func (u getEntitlements) Execute(ctx context.Context) (*domain.EntitlementsSet, error) {
	return u.repo.GetEntitlements(ctx)
}

type getExternalID struct {
	repo ports.EntitlementsRepository
}

func (u getExternalID) Execute(ctx context.Context) (string, error) {
	return u.repo.GetExternalID(ctx)
}

type redeemEntitlements struct {
	repo ports.EntitlementsRepository
}

func (u redeemEntitlements) Execute(ctx context.Context) (domain.EntitlementsSet, error) {
	return u.repo.RedeemEntitlements(ctx)
}

type consumeBooleanEntitlements struct {
	repo ports.EntitlementsRepository
}

func (u consumeBooleanEntitlements) Execute(ctx context.Context, cmd ConsumeBooleanEntitlementsCommand) error {
	return u.repo.ConsumeBooleanEntitlements(ctx, cmd.Names)
}
