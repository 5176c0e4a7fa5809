package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
	"github.com/bnema/entitlements-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingUseCaseFactory struct {
	inner UseCaseFactory
	calls int
}

func (f *countingUseCaseFactory) GetEntitlementsConsumption() GetEntitlementsConsumptionUseCase {
	f.calls++
	return f.inner.GetEntitlementsConsumption()
}

func (f *countingUseCaseFactory) GetEntitlements() GetEntitlementsUseCase {
	f.calls++
	return f.inner.GetEntitlements()
}

func (f *countingUseCaseFactory) GetExternalID() GetExternalIDUseCase {
	f.calls++
	return f.inner.GetExternalID()
}

func (f *countingUseCaseFactory) RedeemEntitlements() RedeemEntitlementsUseCase {
	f.calls++
	return f.inner.RedeemEntitlements()
}

func (f *countingUseCaseFactory) ConsumeBooleanEntitlements() ConsumeBooleanEntitlementsUseCase {
	f.calls++
	return f.inner.ConsumeBooleanEntitlements()
}

type clientFixture struct {
	client  *Client
	session *mocks.MockSessionClient
	repo    *mocks.MockEntitlementsRepository
	graphql *mocks.MockGraphQLClient
	factory *countingUseCaseFactory
}

func newClientFixture(t *testing.T) clientFixture {
	t.Helper()

	session := mocks.NewMockSessionClient(t)
	repo := mocks.NewMockEntitlementsRepository(t)
	graphql := mocks.NewMockGraphQLClient(t)
	factory := &countingUseCaseFactory{inner: NewUseCaseFactory(repo)}

	return clientFixture{
		client:  NewClientWithFactory(session, factory, []ports.Resetter{repo}, graphql, nil),
		session: session,
		repo:    repo,
		graphql: graphql,
		factory: factory,
	}
}

func TestClientOperationsRequireSignIn(t *testing.T) {
	t.Parallel()

	operations := map[string]func(context.Context, *Client) error{
		"consumption": func(ctx context.Context, c *Client) error {
			_, err := c.GetEntitlementsConsumption(ctx)
			return err
		},
		"entitlements": func(ctx context.Context, c *Client) error {
			_, err := c.GetEntitlements(ctx)
			return err
		},
		"external id": func(ctx context.Context, c *Client) error {
			_, err := c.GetExternalID(ctx)
			return err
		},
		"redeem": func(ctx context.Context, c *Client) error {
			_, err := c.RedeemEntitlements(ctx)
			return err
		},
		"consume": func(ctx context.Context, c *Client) error {
			return c.ConsumeBooleanEntitlements(ctx, []string{"feature.enabled"})
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			f := newClientFixture(t)
			f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(false, nil).Once()

			err := op(context.Background(), f.client)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNotSignedIn)
			assert.Zero(t, f.factory.calls)
			f.repo.AssertNotCalled(t, "GetEntitlementsConsumption", mock.Anything)
			f.repo.AssertNotCalled(t, "RedeemEntitlements", mock.Anything)
		})
	}
}

func TestClientSurfacesSessionErrorUnchanged(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	sessionErr := errors.New("keychain unavailable")
	f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(false, sessionErr).Once()

	_, err := f.client.GetExternalID(context.Background())

	assert.Same(t, sessionErr, err)
	assert.Zero(t, f.factory.calls)
}

func TestClientRedeemEntitlementsReturnsRepositoryResult(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	set := domain.EntitlementsSet{
		Name: "entitlements",
		Entitlements: []domain.Entitlement{
			{Name: "e.name", Description: "e.description", Value: 42},
		},
		Version: 1,
		Created: time.UnixMilli(1).UTC(),
		Updated: time.UnixMilli(2).UTC(),
	}

	f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(true, nil).Once()
	f.repo.EXPECT().RedeemEntitlements(mockAnyContext()).Return(set, nil).Once()

	got, err := f.client.RedeemEntitlements(context.Background())

	require.NoError(t, err)
	assert.Equal(t, set, got)
	assert.Equal(t, 1, f.factory.calls)
}

func TestClientPassesRepositoryErrorsThrough(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	repoErr := domain.NewGraphQLError("boom")

	f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(true, nil).Once()
	f.repo.EXPECT().GetEntitlementsConsumption(mockAnyContext()).Return(domain.EntitlementsConsumption{}, repoErr).Once()

	_, err := f.client.GetEntitlementsConsumption(context.Background())

	assert.Same(t, repoErr, err)
	assert.Equal(t, 1, f.factory.calls)
}

func TestClientConsumeBooleanEntitlementsForwardsNames(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	names := []string{"feature.a", "feature.b"}

	f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(true, nil).Once()
	f.repo.EXPECT().ConsumeBooleanEntitlements(mockAnyContext(), names).Return(nil).Once()

	require.NoError(t, f.client.ConsumeBooleanEntitlements(context.Background(), names))
	assert.Equal(t, 1, f.factory.calls)
}

func TestClientGetEntitlementsReturnsNilWhenUserHasNone(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	f.session.EXPECT().IsSignedIn(mockAnyContext()).Return(true, nil).Once()
	f.repo.EXPECT().GetEntitlements(mockAnyContext()).Return(nil, nil).Once()

	got, err := f.client.GetEntitlements(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientResetResetsRepositoryThenClearsCache(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	var order []string
	f.repo.EXPECT().Reset().Run(func() { order = append(order, "repository") }).Return().Once()
	f.graphql.EXPECT().ClearCache(mockAnyContext()).Run(func(context.Context) { order = append(order, "cache") }).Return(nil).Once()

	require.NoError(t, f.client.Reset(context.Background()))

	assert.Equal(t, []string{"repository", "cache"}, order)
	f.repo.AssertNumberOfCalls(t, "Reset", 1)
	f.graphql.AssertNumberOfCalls(t, "ClearCache", 1)
	assert.Zero(t, f.factory.calls)
}

func TestClientResetReturnsCacheError(t *testing.T) {
	t.Parallel()

	f := newClientFixture(t)
	clearErr := errors.New("cache locked")
	f.repo.EXPECT().Reset().Return().Once()
	f.graphql.EXPECT().ClearCache(mockAnyContext()).Return(clearErr).Once()

	err := f.client.Reset(context.Background())

	assert.ErrorIs(t, err, clearErr)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
