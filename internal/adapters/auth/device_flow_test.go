package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlow(server *httptest.Server) DeviceFlow {
	return DeviceFlow{
		Endpoints: Endpoints{
			Issuer:         server.URL,
			DeviceCodePath: "/oauth/device/code",
			TokenPath:      "/oauth/token",
		},
		ClientID:   "ent-cli",
		HTTPClient: server.Client(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestRequestDeviceCodeParsesSuccessResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/device/code", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "ent-cli", r.Form.Get("client_id"))
		assert.Equal(t, "openid offline_access", r.Form.Get("scope"))

		writeJSON(w, http.StatusOK, `{"device_code":"dc-1","user_code":"A1B2-C3D4","verification_uri":"https://id.example.com/activate","verification_uri_complete":"https://id.example.com/activate?code=A1B2-C3D4","interval":3,"expires_in":600}`)
	}))
	t.Cleanup(server.Close)

	code, err := newTestFlow(server).RequestDeviceCode(context.Background(), []string{"openid", "offline_access"})
	require.NoError(t, err)
	assert.Equal(t, "https://id.example.com/activate?code=A1B2-C3D4", code.VerificationURL)
	assert.Equal(t, "A1B2-C3D4", code.UserCode)
	assert.Equal(t, "dc-1", code.DeviceCode)
	assert.Equal(t, 3*time.Second, code.PollInterval)
	assert.Equal(t, 10*time.Minute, code.ExpiresIn)
}

func TestRequestDeviceCodeRejectsIncompleteResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"device_code":"dc-1"}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFlow(server).RequestDeviceCode(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestRequestDeviceCodeReportsOAuthError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"invalid_client","error_description":"unknown client"}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFlow(server).RequestDeviceCode(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_client: unknown client")
}

func TestRequestDeviceCodeTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, http.StatusOK, `{"device_code":"dc-1","user_code":"A1B2","verification_uri":"https://id.example.com/activate"}`)
	}))
	t.Cleanup(server.Close)

	flow := newTestFlow(server)
	flow.RequestTimeout = 20 * time.Millisecond

	_, err := flow.RequestDeviceCode(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request device code")
}

func TestRequestDeviceCodeRequiresClientID(t *testing.T) {
	t.Parallel()

	_, err := DeviceFlow{}.RequestDeviceCode(context.Background(), nil)
	assert.EqualError(t, err, "client id is required")
}

func TestPollTokenReturnsSuccessAfterPending(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, deviceCodeGrantType, r.Form.Get("grant_type"))
		assert.Equal(t, "dc-1", r.Form.Get("device_code"))

		if attempts.Add(1) == 1 {
			writeJSON(w, http.StatusBadRequest, `{"error":"authorization_pending"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token":"token-abc","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh-1"}`)
	}))
	t.Cleanup(server.Close)

	token, err := newTestFlow(server).PollToken(context.Background(), DeviceCode{DeviceCode: "dc-1", PollInterval: 5 * time.Millisecond}, 500*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
	assert.Equal(t, "refresh-1", token.RefreshToken)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestPollTokenTimesOutWhenStillPending(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"authorization_pending"}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFlow(server).PollToken(context.Background(), DeviceCode{DeviceCode: "dc-1", PollInterval: 5 * time.Millisecond}, 25*time.Millisecond)
	require.ErrorIs(t, err, ErrDeviceFlowTimeout)
}

func TestPollTokenTerminalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "denied", body: `{"error":"access_denied"}`, want: ErrAccessDenied},
		{name: "expired", body: `{"error":"expired_token"}`, want: ErrDeviceCodeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, tt.body)
			}))
			t.Cleanup(server.Close)

			_, err := newTestFlow(server).PollToken(context.Background(), DeviceCode{DeviceCode: "dc-1", PollInterval: time.Millisecond}, time.Second)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPollTokenHandlesSlowDownAndEventuallySucceeds(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			writeJSON(w, http.StatusBadRequest, `{"error":"slow_down","interval":0}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token":"token-slow","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(server.Close)

	token, err := newTestFlow(server).PollToken(context.Background(), DeviceCode{DeviceCode: "dc-1", PollInterval: 5 * time.Millisecond}, 6*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "token-slow", token.AccessToken)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestPollTokenStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"authorization_pending"}`)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := newTestFlow(server).PollToken(ctx, DeviceCode{DeviceCode: "dc-1", PollInterval: 10 * time.Millisecond}, time.Minute)
	require.Error(t, err)
}

func TestRefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, refreshTokenGrantType, r.Form.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.Form.Get("refresh_token"))
		assert.Equal(t, "ent-cli", r.Form.Get("client_id"))

		writeJSON(w, http.StatusOK, `{"access_token":"token-2","token_type":"Bearer","expires_in":900}`)
	}))
	t.Cleanup(server.Close)

	token, err := newTestFlow(server).Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token.AccessToken)
	assert.Equal(t, "refresh-1", token.RefreshToken)
}

func TestRefreshInvalidGrant(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"token revoked"}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFlow(server).Refresh(context.Background(), "refresh-1")
	require.ErrorIs(t, err, ErrInvalidGrant)
}

func TestBuildIssuerURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		issuer  string
		path    string
		want    string
		wantErr string
	}{
		{name: "joins path", issuer: "https://id.example.com", path: "/oauth/token", want: "https://id.example.com/oauth/token"},
		{name: "missing issuer", path: "/oauth/token", wantErr: "identity issuer is required"},
		{name: "missing path", issuer: "https://id.example.com", wantErr: "identity endpoint path is required"},
		{name: "bad scheme", issuer: "ftp://id.example.com", path: "/x", wantErr: "http or https"},
		{name: "no host", issuer: "https://", path: "/x", wantErr: "host is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildIssuerURL(tt.issuer, tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
