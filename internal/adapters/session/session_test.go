package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/entitlements-cli/internal/adapters/auth"
	"github.com/bnema/entitlements-cli/internal/apierr"
	"github.com/bnema/entitlements-cli/internal/domain"
	portmocks "github.com/bnema/entitlements-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeRefresher struct {
	token auth.Token
	err   error
	calls []string
}

func (f *fakeRefresher) Refresh(_ context.Context, refreshToken string) (auth.Token, error) {
	f.calls = append(f.calls, refreshToken)
	return f.token, f.err
}

func storedJSON(t *testing.T, tokens storedTokens) string {
	t.Helper()

	raw, err := json.Marshal(tokens)
	require.NoError(t, err)
	return string(raw)
}

func decodedAs(match func(storedTokens) bool) interface{} {
	return mock.MatchedBy(func(raw string) bool {
		var tokens storedTokens
		if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
			return false
		}
		return match(tokens)
	})
}

func newTestSession(t *testing.T, refresher Refresher) (*Session, *portmocks.MockSecretStore, *portmocks.MockClock) {
	t.Helper()

	store := portmocks.NewMockSecretStore(t)
	clock := portmocks.NewMockClock(t)
	return New(store, clock, refresher, nil), store, clock
}

func TestIsSignedIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored string
		getErr error
		want   bool
	}{
		{name: "unexpired token", stored: `{"access_token":"a","expires_at":"2026-03-01T13:00:00Z"}`, want: true},
		{name: "token without expiry", stored: `{"access_token":"a"}`, want: true},
		{name: "expired token", stored: `{"access_token":"a","expires_at":"2026-03-01T11:00:00Z"}`, want: false},
		{name: "token inside skew", stored: `{"access_token":"a","expires_at":"2026-03-01T12:00:10Z"}`, want: false},
		{name: "empty access token", stored: `{"access_token":""}`, want: false},
		{name: "nothing stored", getErr: fmt.Errorf("secret: %w", domain.ErrSecretNotFound), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, store, clock := newTestSession(t, nil)
			store.EXPECT().Get(mock.Anything, DefaultKey).Return(tt.stored, tt.getErr).Once()
			if tt.getErr == nil {
				clock.EXPECT().Now().Return(testNow).Once()
			}

			got, err := session.IsSignedIn(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSignedInReturnsStoreErrors(t *testing.T) {
	t.Parallel()

	session, store, _ := newTestSession(t, nil)
	storeErr := errors.New("gpg agent unavailable")
	store.EXPECT().Get(mock.Anything, DefaultKey).Return("", storeErr).Once()

	_, err := session.IsSignedIn(context.Background())

	require.ErrorIs(t, err, storeErr)
}

func TestIsSignedInRejectsCorruptSession(t *testing.T) {
	t.Parallel()

	session, store, _ := newTestSession(t, nil)
	store.EXPECT().Get(mock.Anything, DefaultKey).Return("not json", nil).Once()

	_, err := session.IsSignedIn(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode stored session")
}

func TestAccessTokenWithoutSessionIsNotSignedIn(t *testing.T) {
	t.Parallel()

	session, store, _ := newTestSession(t, nil)
	store.EXPECT().Get(mock.Anything, DefaultKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := session.AccessToken(context.Background())

	require.ErrorIs(t, err, apierr.ErrNotSignedIn)
}

func TestAccessTokenReturnsStoredToken(t *testing.T) {
	t.Parallel()

	session, store, clock := newTestSession(t, nil)
	store.EXPECT().Get(mock.Anything, DefaultKey).
		Return(storedJSON(t, storedTokens{AccessToken: "token-1", ExpiresAt: testNow.Add(time.Hour)}), nil).Once()
	clock.EXPECT().Now().Return(testNow).Once()

	token, err := session.AccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestAccessTokenRefreshesExpiredSession(t *testing.T) {
	t.Parallel()

	refresher := &fakeRefresher{token: auth.Token{AccessToken: "token-2", ExpiresIn: 3600}}
	session, store, clock := newTestSession(t, refresher)
	store.EXPECT().Get(mock.Anything, DefaultKey).
		Return(storedJSON(t, storedTokens{AccessToken: "token-1", RefreshToken: "refresh-1", ExpiresAt: testNow.Add(-time.Minute)}), nil).Once()
	clock.EXPECT().Now().Return(testNow).Twice()
	store.EXPECT().Put(mock.Anything, DefaultKey, decodedAs(func(tokens storedTokens) bool {
		return tokens.AccessToken == "token-2" &&
			tokens.RefreshToken == "refresh-1" &&
			tokens.ExpiresAt.Equal(testNow.Add(time.Hour))
	})).Return(nil).Once()

	token, err := session.AccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, []string{"refresh-1"}, refresher.calls)
}

func TestRejectedRefreshClearsSession(t *testing.T) {
	t.Parallel()

	refresher := &fakeRefresher{err: auth.ErrInvalidGrant}
	session, store, clock := newTestSession(t, refresher)
	store.EXPECT().Get(mock.Anything, DefaultKey).
		Return(storedJSON(t, storedTokens{AccessToken: "token-1", RefreshToken: "refresh-1", ExpiresAt: testNow.Add(-time.Minute)}), nil).Once()
	clock.EXPECT().Now().Return(testNow).Once()
	store.EXPECT().Delete(mock.Anything, DefaultKey).Return(nil).Once()

	signedIn, err := session.IsSignedIn(context.Background())

	require.NoError(t, err)
	assert.False(t, signedIn)
}

func TestRefreshFailureIsReported(t *testing.T) {
	t.Parallel()

	refreshErr := errors.New("identity service unreachable")
	session, store, clock := newTestSession(t, &fakeRefresher{err: refreshErr})
	store.EXPECT().Get(mock.Anything, DefaultKey).
		Return(storedJSON(t, storedTokens{AccessToken: "token-1", RefreshToken: "refresh-1", ExpiresAt: testNow.Add(-time.Minute)}), nil).Once()
	clock.EXPECT().Now().Return(testNow).Once()

	_, err := session.IsSignedIn(context.Background())

	require.ErrorIs(t, err, refreshErr)
}

func TestSaveComputesExpiry(t *testing.T) {
	t.Parallel()

	session, store, clock := newTestSession(t, nil)
	clock.EXPECT().Now().Return(testNow).Once()
	store.EXPECT().Put(mock.Anything, DefaultKey, decodedAs(func(tokens storedTokens) bool {
		return tokens.AccessToken == "token-1" &&
			tokens.RefreshToken == "refresh-1" &&
			tokens.TokenType == "Bearer" &&
			tokens.ExpiresAt.Equal(testNow.Add(15*time.Minute))
	})).Return(nil).Once()

	err := session.Save(context.Background(), auth.Token{AccessToken: "token-1", RefreshToken: "refresh-1", TokenType: "Bearer", ExpiresIn: 900})

	require.NoError(t, err)
}

func TestSaveRejectsEmptyAccessToken(t *testing.T) {
	t.Parallel()

	session, _, _ := newTestSession(t, nil)

	err := session.Save(context.Background(), auth.Token{})

	assert.EqualError(t, err, "access token is required")
}

func TestSignOutDeletesSession(t *testing.T) {
	t.Parallel()

	session, store, _ := newTestSession(t, nil)
	store.EXPECT().Delete(mock.Anything, DefaultKey).Return(nil).Once()

	require.NoError(t, session.SignOut(context.Background()))
}

func TestExpiresAt(t *testing.T) {
	t.Parallel()

	session, store, _ := newTestSession(t, nil)
	expiry := testNow.Add(time.Hour)
	store.EXPECT().Get(mock.Anything, DefaultKey).Return(storedJSON(t, storedTokens{AccessToken: "a", ExpiresAt: expiry}), nil).Once()
	store.EXPECT().Get(mock.Anything, DefaultKey).Return("", domain.ErrSecretNotFound).Once()

	got, ok, err := session.ExpiresAt(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, expiry.Equal(got))

	_, ok, err = session.ExpiresAt(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
