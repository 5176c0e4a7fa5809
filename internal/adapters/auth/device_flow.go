package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	deviceCodeGrantType   = "urn:ietf:params:oauth:grant-type:device_code"
	refreshTokenGrantType = "refresh_token"
	maxOAuthResponseBytes = 1 << 20

	defaultPollInterval = 5 * time.Second
	defaultPollTimeout  = 5 * time.Minute
	slowDownIncrement   = 5 * time.Second
)

var (
	ErrDeviceFlowTimeout = errors.New("timed out waiting for device authorization")
	ErrAccessDenied      = errors.New("device authorization denied")
	ErrDeviceCodeExpired = errors.New("device code expired")
	// ErrInvalidGrant means the refresh token was revoked or expired and the
	// user has to sign in again.
	ErrInvalidGrant = errors.New("refresh token rejected")
)

// Endpoints locates the identity service.
type Endpoints struct {
	Issuer         string
	DeviceCodePath string
	TokenPath      string
}

// DeviceFlow signs a user in with the OAuth 2.0 device authorization grant
// and renews tokens with the refresh grant.
type DeviceFlow struct {
	Endpoints      Endpoints
	ClientID       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type DeviceCode struct {
	VerificationURL string
	UserCode        string
	DeviceCode      string
	PollInterval    time.Duration
	ExpiresIn       time.Duration
}

type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Scope        string `json:"scope"`
}

type deviceCodeResponse struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURIComplete string `json:"verification_uri_complete"`
	Interval                int64  `json:"interval"`
	ExpiresIn               int64  `json:"expires_in"`
}

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Interval         int64  `json:"interval"`
}

func (f DeviceFlow) RequestDeviceCode(ctx context.Context, scopes []string) (DeviceCode, error) {
	if f.ClientID == "" {
		return DeviceCode{}, errors.New("client id is required")
	}

	values := url.Values{}
	values.Set("client_id", f.ClientID)
	if len(scopes) > 0 {
		values.Set("scope", strings.Join(scopes, " "))
	}

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()

	resp, err := f.postForm(requestCtx, f.Endpoints.DeviceCodePath, values)
	if err != nil {
		return DeviceCode{}, fmt.Errorf("request device code: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return DeviceCode{}, fmt.Errorf("request device code: %s", formatOAuthError(resp.StatusCode, decodeOAuthError(resp)))
	}

	var payload deviceCodeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxOAuthResponseBytes)).Decode(&payload); err != nil {
		return DeviceCode{}, fmt.Errorf("decode device code response: %w", err)
	}

	verificationURL := payload.VerificationURI
	if payload.VerificationURIComplete != "" {
		verificationURL = payload.VerificationURIComplete
	}
	if payload.DeviceCode == "" || payload.UserCode == "" || verificationURL == "" {
		return DeviceCode{}, errors.New("device code response missing required fields")
	}

	interval := time.Duration(payload.Interval) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return DeviceCode{
		VerificationURL: verificationURL,
		UserCode:        payload.UserCode,
		DeviceCode:      payload.DeviceCode,
		PollInterval:    interval,
		ExpiresIn:       time.Duration(payload.ExpiresIn) * time.Second,
	}, nil
}

// PollToken waits until the user approves the device code. The wait ends
// at the first of timeout, the code's own expiry, or ctx cancellation.
func (f DeviceFlow) PollToken(ctx context.Context, code DeviceCode, timeout time.Duration) (Token, error) {
	if f.ClientID == "" {
		return Token{}, errors.New("client id is required")
	}
	if code.DeviceCode == "" {
		return Token{}, errors.New("device code is required")
	}

	interval := code.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	if code.ExpiresIn > 0 && code.ExpiresIn < timeout {
		timeout = code.ExpiresIn
	}

	values := url.Values{}
	values.Set("grant_type", deviceCodeGrantType)
	values.Set("client_id", f.ClientID)
	values.Set("device_code", code.DeviceCode)

	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			return Token{}, ErrDeviceFlowTimeout
		}

		token, oauthErr, err := f.exchange(ctx, values, deadline)
		if err != nil {
			return Token{}, err
		}
		if oauthErr == nil {
			return token, nil
		}

		switch oauthErr.Error {
		case "authorization_pending":
		case "slow_down":
			interval += slowDownIncrement
		case "access_denied":
			return Token{}, ErrAccessDenied
		case "expired_token":
			return Token{}, ErrDeviceCodeExpired
		default:
			return Token{}, fmt.Errorf("request token: %s", formatOAuthError(http.StatusBadRequest, *oauthErr))
		}
		if oauthErr.Interval > 0 {
			interval = time.Duration(oauthErr.Interval) * time.Second
		}

		f.logger().DebugContext(ctx, "device authorization pending", slog.String("state", oauthErr.Error), slog.Duration("interval", interval))
		if time.Now().Add(interval).After(deadline) {
			return Token{}, ErrDeviceFlowTimeout
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Token{}, ctx.Err()
		case <-timer.C:
		}
	}
}

// Refresh trades a refresh token for a new access token. Providers that do
// not rotate refresh tokens omit it from the response; the old one is kept.
func (f DeviceFlow) Refresh(ctx context.Context, refreshToken string) (Token, error) {
	if f.ClientID == "" {
		return Token{}, errors.New("client id is required")
	}
	if refreshToken == "" {
		return Token{}, errors.New("refresh token is required")
	}

	values := url.Values{}
	values.Set("grant_type", refreshTokenGrantType)
	values.Set("client_id", f.ClientID)
	values.Set("refresh_token", refreshToken)

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()
	deadline, _ := requestCtx.Deadline()

	token, oauthErr, err := f.exchange(requestCtx, values, deadline)
	if err != nil {
		return Token{}, fmt.Errorf("refresh token: %w", err)
	}
	if oauthErr != nil {
		if oauthErr.Error == "invalid_grant" {
			return Token{}, ErrInvalidGrant
		}
		return Token{}, fmt.Errorf("refresh token: %s", formatOAuthError(http.StatusBadRequest, *oauthErr))
	}
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	return token, nil
}

// exchange posts a token request. A non-nil oauthErrorResponse reports an
// OAuth error body; err covers transport and decode failures.
func (f DeviceFlow) exchange(ctx context.Context, values url.Values, deadline time.Time) (Token, *oauthErrorResponse, error) {
	reqCtx := ctx
	if ctxDeadline, ok := ctx.Deadline(); !deadline.IsZero() && (!ok || deadline.Before(ctxDeadline)) {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	resp, err := f.postForm(reqCtx, f.Endpoints.TokenPath, values)
	if err != nil {
		return Token{}, nil, fmt.Errorf("request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		var token Token
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxOAuthResponseBytes)).Decode(&token); err != nil {
			return Token{}, nil, fmt.Errorf("decode token response: %w", err)
		}
		if token.AccessToken == "" {
			return Token{}, nil, errors.New("token response missing access token")
		}
		return token, nil, nil
	}

	oauthErr := decodeOAuthError(resp)
	if oauthErr.Error == "" {
		return Token{}, nil, fmt.Errorf("request token: status %d", resp.StatusCode)
	}

	return Token{}, &oauthErr, nil
}

func (f DeviceFlow) postForm(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	endpoint, err := buildIssuerURL(f.Endpoints.Issuer, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return f.httpClient().Do(req)
}

func (f DeviceFlow) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f DeviceFlow) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (f DeviceFlow) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := f.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeOAuthError(resp *http.Response) oauthErrorResponse {
	var oauthErr oauthErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxOAuthResponseBytes)).Decode(&oauthErr)
	return oauthErr
}

func formatOAuthError(statusCode int, oauthErr oauthErrorResponse) string {
	if oauthErr.Error == "" {
		return fmt.Sprintf("status %d", statusCode)
	}
	if oauthErr.ErrorDescription != "" {
		return oauthErr.Error + ": " + oauthErr.ErrorDescription
	}
	return oauthErr.Error
}

func buildIssuerURL(issuer string, path string) (string, error) {
	if issuer == "" {
		return "", errors.New("identity issuer is required")
	}
	if path == "" {
		return "", errors.New("identity endpoint path is required")
	}

	parsed, err := url.Parse(issuer)
	if err != nil {
		return "", fmt.Errorf("parse identity issuer: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("identity issuer must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("identity issuer host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse identity endpoint path: %w", err)
	}
	return endpoint.String(), nil
}
