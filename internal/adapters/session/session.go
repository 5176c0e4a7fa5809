package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/entitlements-cli/internal/adapters/auth"
	"github.com/bnema/entitlements-cli/internal/apierr"
	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
)

// DefaultKey is where the token set lives in the secret store.
const DefaultKey = "session/tokens"

// Tokens within expirySkew of their expiry already count as expired.
const expirySkew = 30 * time.Second

var errSessionExpired = errors.New("session expired")

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (auth.Token, error)
}

type storedTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

func (t storedTokens) validAt(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || now.Add(expirySkew).Before(t.ExpiresAt)
}

// Session keeps the signed-in user's tokens in a secret store. A user is
// signed in while an unexpired access token is stored; expired tokens are
// renewed through the refresher when a refresh token is available.
type Session struct {
	store     ports.SecretStore
	clock     ports.Clock
	refresher Refresher
	key       string
	logger    *slog.Logger

	mu sync.Mutex
}

var (
	_ ports.SessionClient = (*Session)(nil)
	_ ports.TokenProvider = (*Session)(nil)
)

func New(store ports.SecretStore, clock ports.Clock, refresher Refresher, logger *slog.Logger) *Session {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{
		store:     store,
		clock:     clock,
		refresher: refresher,
		key:       DefaultKey,
		logger:    logger,
	}
}

func (s *Session) IsSignedIn(ctx context.Context) (bool, error) {
	_, err := s.current(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrSecretNotFound), errors.Is(err, errSessionExpired):
		return false, nil
	default:
		return false, err
	}
}

func (s *Session) AccessToken(ctx context.Context) (string, error) {
	tokens, err := s.current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, errSessionExpired) {
			return "", apierr.ErrNotSignedIn
		}
		return "", err
	}

	return tokens.AccessToken, nil
}

// Save stores a freshly issued token set. A zero ExpiresIn means the token
// does not expire.
func (s *Session) Save(ctx context.Context, token auth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, s.fromToken(token, ""))
}

func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// ExpiresAt reports when the stored access token expires. ok is false when
// nothing is stored or the token never expires.
func (s *Session) ExpiresAt(ctx context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	return tokens.ExpiresAt, !tokens.ExpiresAt.IsZero(), nil
}

func (s *Session) current(ctx context.Context) (storedTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.load(ctx)
	if err != nil {
		return storedTokens{}, err
	}

	now := s.clock.Now()
	if tokens.validAt(now) {
		return tokens, nil
	}
	if s.refresher == nil || tokens.RefreshToken == "" {
		return storedTokens{}, errSessionExpired
	}

	s.logger.DebugContext(ctx, "refreshing expired session", slog.Time("expired_at", tokens.ExpiresAt))
	refreshed, err := s.refresher.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidGrant) {
			s.logger.InfoContext(ctx, "refresh token rejected, clearing session")
			if deleteErr := s.store.Delete(ctx, s.key); deleteErr != nil {
				s.logger.WarnContext(ctx, "clear rejected session", slog.Any("error", deleteErr))
			}
			return storedTokens{}, errSessionExpired
		}
		return storedTokens{}, fmt.Errorf("refresh session: %w", err)
	}

	next := s.fromToken(refreshed, tokens.RefreshToken)
	if err := s.save(ctx, next); err != nil {
		return storedTokens{}, err
	}

	return next, nil
}

func (s *Session) fromToken(token auth.Token, previousRefresh string) storedTokens {
	stored := storedTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scope:        token.Scope,
	}
	if stored.RefreshToken == "" {
		stored.RefreshToken = previousRefresh
	}
	if token.ExpiresIn > 0 {
		stored.ExpiresAt = s.clock.Now().Add(time.Duration(token.ExpiresIn) * time.Second).UTC()
	}

	return stored
}

func (s *Session) load(ctx context.Context) (storedTokens, error) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		return storedTokens{}, err
	}

	var tokens storedTokens
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return storedTokens{}, fmt.Errorf("decode stored session: %w", err)
	}

	return tokens, nil
}

func (s *Session) save(ctx context.Context, tokens storedTokens) error {
	if tokens.AccessToken == "" {
		return errors.New("access token is required")
	}

	raw, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Put(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}
