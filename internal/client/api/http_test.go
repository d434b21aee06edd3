package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

/*************
 * Fake token store
 *************/

type memTokens struct {
	mu      sync.Mutex
	tok     *oauth2.Token
	saves   int
	clears  int
	loadErr error
}

func (m *memTokens) Tokens(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.tok == nil {
		return nil, nil
	}
	cp := *m.tok
	return &cp, nil
}

func (m *memTokens) SaveTokens(ctx context.Context, tok *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	next := *tok
	if next.RefreshToken == "" && m.tok != nil {
		next.RefreshToken = m.tok.RefreshToken
	}
	m.tok = &next
	return nil
}

func (m *memTokens) ClearTokens(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.tok = nil
	return nil
}

func (m *memTokens) current() *oauth2.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func userBody() map[string]any {
	return map[string]any{
		"id": "u1", "email": "alice@example.com", "name": "Alice",
		"role": "admin", "is_verified": true, "auth_provider": "local",
	}
}

func TestHTTPClient_SendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/me", r.URL.Path)
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		gotReqID = r.Header.Get(common.RequestIDHeader)
		writeJSON(w, http.StatusOK, userBody())
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc", RefreshToken: "ref"}}
	c := NewHTTPClient(srv.URL+"/api/v1/", store)

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "Bearer acc", gotAuth)
	assert.Len(t, gotReqID, 36)
}

func TestHTTPClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	var got models.SignupInitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"status": "password_required", "email": got.Email})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{})
	resp, err := c.SignupInit(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPasswordRequired, resp.Status)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_ErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode string
	}{
		{"detail", 404, `{"detail":"User not found"}`, "User not found", ""},
		{"message", 400, `{"message":"Email already registered"}`, "Email already registered", ""},
		{"structured", 403, `{"detail":"Admin account","code":"ADMIN_ACCOUNT"}`, "Admin account", CodeAdminAccount},
		{"detail list", 422, `{"detail":[{"msg":"field required"},{"msg":"bad email"}]}`, "field required; bad email", ""},
		{"empty body", 500, ``, "HTTP 500", ""},
		{"html body", 502, `<html>bad gateway</html>`, "HTTP 502", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, &memTokens{})
			_, err := c.SignupInit(context.Background(), "x@example.com")
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrRequestFailed))

			re, ok := AsRequestError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.wantMsg, re.Message)
			assert.Equal(t, tt.wantCode, re.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestHTTPClient_LocalValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{})
	ctx := context.Background()

	for _, code := range []string{"", "12345", "1234567", "12a456", "１２３４５６"} {
		_, err := c.SignupVerify(ctx, "a@example.com", code)
		require.ErrorIs(t, err, models.ErrInvalidCode, code)
		_, err = c.VerifyOTP(ctx, "a@example.com", code)
		require.ErrorIs(t, err, models.ErrInvalidCode, code)
	}

	_, err := c.SignupPassword(ctx, "a@example.com", "short")
	require.ErrorIs(t, err, models.ErrPasswordTooShort)

	_, err = c.SignupComplete(ctx, models.SignupCompleteRequest{Email: "a@example.com", TempToken: "t", Name: "A", Birthday: "01/05/1990"})
	require.ErrorIs(t, err, models.ErrInvalidBirthday)

	assert.Equal(t, int32(0), hits.Load())
}

func TestHTTPClient_RefreshOnceAndRetry(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathRefresh:
			refreshes.Add(1)
			var req models.RefreshRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			require.Equal(t, "ref1", req.RefreshToken)
			require.Empty(t, r.Header.Get(common.AuthorizationHeader))
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "acc2", "refresh_token": "ref2"})
		case pathMe:
			meCalls.Add(1)
			if r.Header.Get(common.AuthorizationHeader) != "Bearer acc2" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, userBody())
		}
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), meCalls.Load())

	tok := store.current()
	assert.Equal(t, "acc2", tok.AccessToken)
	assert.Equal(t, "ref2", tok.RefreshToken)
}

func TestHTTPClient_RefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathRefresh:
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "acc2"})
		case pathMe:
			if r.Header.Get(common.AuthorizationHeader) != "Bearer acc2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, userBody())
		}
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ref1", store.current().RefreshToken)
}

func TestHTTPClient_RefreshFailureClearsTokensAndFiresHook(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathRefresh:
			refreshes.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "refresh token revoked"})
		case pathMe:
			meCalls.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
		}
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	var hookCalls atomic.Int32
	c.SetOnUnauthenticated(func(ctx context.Context) { hookCalls.Add(1) })

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(1), meCalls.Load(), "original request is not retried after a failed refresh")
	assert.Nil(t, store.current())
	assert.Equal(t, 1, store.clears)
	assert.Equal(t, int32(1), hookCalls.Load())
}

func TestHTTPClient_NoRefreshTokenDropsSession(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathRefresh {
			refreshes.Add(1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1"}}
	c := NewHTTPClient(srv.URL, store)
	fired := false
	c.SetOnUnauthenticated(func(ctx context.Context) { fired = true })

	err := c.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(0), refreshes.Load())
	assert.Nil(t, store.current())
	assert.True(t, fired)
}

func TestHTTPClient_RetriedRequestIsNotRefreshedAgain(t *testing.T) {
	var refreshes, meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathRefresh:
			refreshes.Add(1)
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "acc2"})
		case pathMe:
			meCalls.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
		}
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	re, ok := AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, re.Status)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), meCalls.Load())
}

func TestHTTPClient_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathRefresh:
			refreshes.Add(1)
			time.Sleep(50 * time.Millisecond)
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "acc2", "refresh_token": "ref2"})
		case pathMe:
			if r.Header.Get(common.AuthorizationHeader) != "Bearer acc2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, userBody())
		}
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.CurrentUser(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "acc2", store.current().AccessToken)
}

func TestHTTPClient_TokenIssuing401DoesNotRefresh(t *testing.T) {
	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathRefresh {
			refreshes.Add(1)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	store := &memTokens{tok: &oauth2.Token{AccessToken: "acc1", RefreshToken: "ref1"}}
	c := NewHTTPClient(srv.URL, store)

	_, err := c.Login(context.Background(), "a@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, int32(0), refreshes.Load())
	assert.NotNil(t, store.current())
}

func TestHTTPClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, &memTokens{}, WithTimeout(time.Second))
	_, err := c.SignupInit(context.Background(), "a@example.com")
	require.ErrorIs(t, err, ErrUnavailable)

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_AdminVerifyMagicLinkQuery(t *testing.T) {
	var gotToken, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotToken = r.URL.Query().Get("token")
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "a", "refresh_token": "r", "token_type": "bearer"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{})
	resp, err := c.AdminVerifyMagicLink(context.Background(), "tok+/=")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "tok+/=", gotToken)
	assert.Equal(t, "a", resp.AccessToken)
}

func TestHTTPClient_EmptyAccessTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token_type": "bearer"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{})
	_, err := c.GoogleOAuth(context.Background(), "idt")
	require.Error(t, err)
}

func TestHTTPClient_Permissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathMePermissions, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string][]string{"permissions": {"projects:read", "projects:write"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{tok: &oauth2.Token{AccessToken: "a"}})
	perms, err := c.Permissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"projects:read", "projects:write"}, perms)
}

func TestHTTPClient_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, &memTokens{})
	require.NoError(t, c.Ping(context.Background()))

	status.Store(http.StatusServiceUnavailable)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_LogsNeverCarryCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "verification_sent"})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	c := NewHTTPClient(srv.URL, &memTokens{}, WithLogger(logging.New(logging.EnvLocal, &buf)))

	_, err := c.SignupPassword(context.Background(), "alice@example.com", "s3cret-passw0rd")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, pathSignupPassword)
	assert.NotContains(t, out, "s3cret-passw0rd")
	assert.NotContains(t, out, "alice@example.com")
}
