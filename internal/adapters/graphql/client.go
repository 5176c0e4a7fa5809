package graphql

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/entitlements-cli/internal/apierr"
	"github.com/bnema/entitlements-cli/internal/ports"
)

const maxResponseBytes = 4 << 20

var ErrCacheMiss = errors.New("no cached response")

// transportErrorTypes are gateway-level error types that carry no
// entitlements meaning and map straight to transport categories.
var transportErrorTypes = map[string]error{
	"UnauthorizedException": apierr.ErrNotAuthorized,
	"ThrottlingException":   apierr.ErrRateLimitExceeded,
	"BadRequestException":   apierr.ErrInvalidRequest,
}

// Client executes GraphQL operations over HTTP POST.
type Client struct {
	Endpoint       string
	Tokens         ports.TokenProvider
	Cache          ports.ResponseCache
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

var _ ports.GraphQLClient = Client{}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

type responseError struct {
	Message    string `json:"message"`
	ErrorType  string `json:"errorType"`
	Path       []any  `json:"path"`
	Extensions struct {
		ErrorType string `json:"errorType"`
	} `json:"extensions"`
}

// Query honours op.CachePolicy on the read side. Every response fetched from
// the service is stored, whatever the policy.
func (c Client) Query(ctx context.Context, op ports.Operation) (json.RawMessage, error) {
	key := cacheKey(op)

	if c.Cache != nil && (op.CachePolicy == ports.CachePolicyCacheFirst || op.CachePolicy == ports.CachePolicyCacheOnly) {
		cached, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			c.logger().WarnContext(ctx, "read cached response", slog.String("operation", op.Name), slog.Any("error", err))
		}
		if ok {
			c.logger().DebugContext(ctx, "serving cached response", slog.String("operation", op.Name))
			return cached, nil
		}
	}
	if op.CachePolicy == ports.CachePolicyCacheOnly {
		return nil, &apierr.RequestFailedError{Cause: fmt.Errorf("%s: %w", op.Name, ErrCacheMiss)}
	}

	data, err := c.do(ctx, op)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, key, data); err != nil {
			c.logger().WarnContext(ctx, "store cached response", slog.String("operation", op.Name), slog.Any("error", err))
		}
	}

	return data, nil
}

// Mutate never reads from or writes to the cache.
func (c Client) Mutate(ctx context.Context, op ports.Operation) (json.RawMessage, error) {
	return c.do(ctx, op)
}

func (c Client) ClearCache(ctx context.Context) error {
	if c.Cache == nil {
		return nil
	}
	if err := c.Cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear response cache: %w", err)
	}

	return nil
}

func (c Client) do(ctx context.Context, op ports.Operation) (json.RawMessage, error) {
	endpoint, err := validateEndpoint(c.Endpoint)
	if err != nil {
		return nil, err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request{Query: op.Document, OperationName: op.Name, Variables: op.Variables})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op.Name, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &apierr.RequestFailedError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger().DebugContext(ctx, "graphql response",
		slog.String("operation", op.Name),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(started)),
	)

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	var payload response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, &apierr.RequestFailedError{StatusCode: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}
	if len(payload.Errors) > 0 {
		return nil, classifyGraphQLError(payload.Errors[0])
	}

	return payload.Data, nil
}

func (c Client) accessToken(ctx context.Context) (string, error) {
	if c.Tokens == nil {
		return "", apierr.ErrNotSignedIn
	}

	token, err := c.Tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}
	if token == "" {
		return "", apierr.ErrNotSignedIn
	}

	return token, nil
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apierr.ErrNotAuthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return apierr.ErrRateLimitExceeded
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var cause error
	if text := strings.TrimSpace(string(snippet)); text != "" {
		cause = errors.New(text)
	}

	return &apierr.RequestFailedError{StatusCode: resp.StatusCode, Cause: cause}
}

func classifyGraphQLError(e responseError) error {
	errorType := e.ErrorType
	if errorType == "" {
		errorType = e.Extensions.ErrorType
	}
	if sentinel, ok := transportErrorTypes[errorType]; ok {
		if e.Message == "" {
			return sentinel
		}
		return fmt.Errorf("%s: %w", e.Message, sentinel)
	}

	path := make([]string, 0, len(e.Path))
	for _, segment := range e.Path {
		path = append(path, fmt.Sprint(segment))
	}

	return &apierr.GraphQLError{Message: e.Message, ErrorType: errorType, Path: path}
}

func cacheKey(op ports.Operation) string {
	variables, _ := json.Marshal(op.Variables)

	h := sha256.New()
	h.Write([]byte(op.Name))
	h.Write([]byte{0})
	h.Write([]byte(op.Document))
	h.Write([]byte{0})
	h.Write(variables)

	return op.Name + ":" + hex.EncodeToString(h.Sum(nil))
}

func validateEndpoint(endpoint string) (string, error) {
	if endpoint == "" {
		return "", errors.New("graphql endpoint is required")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse graphql endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("graphql endpoint must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("graphql endpoint host is required")
	}

	return parsed.String(), nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
