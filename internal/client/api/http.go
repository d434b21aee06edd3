package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	pathSignupInit       = "/auth/signup/init"
	pathSignupPassword   = "/auth/signup/password"
	pathSignupVerify     = "/auth/signup/verify"
	pathSignupComplete   = "/auth/signup/complete"
	pathLogin            = "/auth/login"
	pathRequestOTP       = "/auth/login/request-otp"
	pathVerifyOTP        = "/auth/login/verify-otp"
	pathGoogleOAuth      = "/auth/oauth/google"
	pathAdminRequestLink = "/auth/admin/request-link"
	pathAdminVerify      = "/auth/admin/verify"
	pathMe               = "/auth/me"
	pathMePermissions    = "/auth/me/permissions"
	pathRefresh          = "/auth/refresh"
	pathLogout           = "/auth/logout"
	pathHealth           = "/health"
)

const maxResponseBody = 1 << 20

type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenStore
	log     logging.Logger

	refreshGroup singleflight.Group

	hookMu            sync.RWMutex
	onUnauthenticated func(ctx context.Context)
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.hc = &http.Client{Timeout: d} }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetOnUnauthenticated registers the hook run after a failed refresh has
// cleared the stored tokens.
func (c *HTTPClient) SetOnUnauthenticated(fn func(ctx context.Context)) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onUnauthenticated = fn
}

func (c *HTTPClient) fireUnauthenticated(ctx context.Context) {
	c.hookMu.RLock()
	fn := c.onUnauthenticated
	c.hookMu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

type call struct {
	method string
	path   string
	query  url.Values
	in     any
	out    any
	// auth marks endpoints whose 401 means an expired access token.
	auth bool
}

func (c *HTTPClient) do(ctx context.Context, cl call) error {
	var payload []byte
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", cl.path, err)
		}
		payload = b
	}

	tok, err := c.tokens.Tokens(ctx)
	if err != nil {
		return fmt.Errorf("load tokens: %w", err)
	}

	status, body, err := c.send(ctx, cl, payload, tok)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && cl.auth {
		fresh, err := c.refresh(ctx, tok)
		if err != nil {
			return err
		}
		// the retried request is never refreshed again
		status, body, err = c.send(ctx, cl, payload, fresh)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return newRequestError(status, body)
	}

	if cl.out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		return fmt.Errorf("decode %s: %w", cl.path, err)
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, cl call, payload []byte, tok *oauth2.Token) (int, []byte, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}

	log := c.log.With("request_id", reqID, "method", cl.method, "path", cl.path)
	log.Debug(ctx, "api request", "body", redactPayload(payload))

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		log.Warn(ctx, "api transport error", "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "api response", "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp.StatusCode, body, nil
}

func redactPayload(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "[unparsed]"
	}
	return logging.RedactFields(fields)
}

// refresh exchanges the stored refresh token for a new access token. All
// callers that hit a 401 at the same time share one backend call.
func (c *HTTPClient) refresh(ctx context.Context, failed *oauth2.Token) (*oauth2.Token, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		ctx := context.WithoutCancel(ctx)

		cur, err := c.tokens.Tokens(ctx)
		if err != nil {
			return nil, fmt.Errorf("load tokens: %w", err)
		}
		// another caller already rotated the pair
		if cur != nil && (failed == nil || cur.AccessToken != failed.AccessToken) {
			return cur, nil
		}

		if cur == nil || cur.RefreshToken == "" {
			c.dropSession(ctx, "no refresh token")
			return nil, ErrUnauthorized
		}

		resp, err := c.Refresh(ctx, cur.RefreshToken)
		if err != nil {
			c.dropSession(ctx, err.Error())
			return nil, fmt.Errorf("%w: refresh: %w", ErrUnauthorized, err)
		}

		next := models.TokensResponse{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}.Token()
		if err := c.tokens.SaveTokens(ctx, next); err != nil {
			return nil, fmt.Errorf("save refreshed tokens: %w", err)
		}
		if next.RefreshToken == "" {
			next.RefreshToken = cur.RefreshToken
		}
		c.log.Info(ctx, "access token refreshed")
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

func (c *HTTPClient) dropSession(ctx context.Context, reason string) {
	c.log.Warn(ctx, "session dropped", "reason", reason)
	if err := c.tokens.ClearTokens(ctx); err != nil {
		c.log.Error(ctx, "clear tokens", "error", err)
	}
	c.fireUnauthenticated(ctx)
}

func (c *HTTPClient) SignupInit(ctx context.Context, email string) (*models.SignupInitResponse, error) {
	var out models.SignupInitResponse
	err := c.do(ctx, call{method: http.MethodPost, path: pathSignupInit,
		in: models.SignupInitRequest{Email: email}, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SignupPassword(ctx context.Context, email, password string) (*models.SignupPasswordResponse, error) {
	if err := models.ValidatePassword(password); err != nil {
		return nil, err
	}
	var out models.SignupPasswordResponse
	err := c.do(ctx, call{method: http.MethodPost, path: pathSignupPassword,
		in: models.SignupPasswordRequest{Email: email, Password: password}, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SignupVerify(ctx context.Context, email, code string) (*models.SignupVerifyResponse, error) {
	if err := models.ValidateCode(code); err != nil {
		return nil, err
	}
	var out models.SignupVerifyResponse
	err := c.do(ctx, call{method: http.MethodPost, path: pathSignupVerify,
		in: models.SignupVerifyRequest{Email: email, Code: code}, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SignupComplete(ctx context.Context, req models.SignupCompleteRequest) (*models.TokensResponse, error) {
	if err := models.ValidateBirthday(req.Birthday); err != nil {
		return nil, err
	}
	return c.issue(ctx, call{method: http.MethodPost, path: pathSignupComplete, in: req})
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokensResponse, error) {
	return c.issue(ctx, call{method: http.MethodPost, path: pathLogin,
		in: models.LoginRequest{Email: email, Password: password}})
}

func (c *HTTPClient) RequestOTP(ctx context.Context, email string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	err := c.do(ctx, call{method: http.MethodPost, path: pathRequestOTP,
		in: models.OTPRequest{Email: email}, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) (*models.TokensResponse, error) {
	if err := models.ValidateCode(code); err != nil {
		return nil, err
	}
	return c.issue(ctx, call{method: http.MethodPost, path: pathVerifyOTP,
		in: models.OTPVerifyRequest{Email: email, Code: code}})
}

func (c *HTTPClient) GoogleOAuth(ctx context.Context, idToken string) (*models.TokensResponse, error) {
	return c.issue(ctx, call{method: http.MethodPost, path: pathGoogleOAuth,
		in: models.GoogleOAuthRequest{IDToken: idToken}})
}

func (c *HTTPClient) AdminRequestMagicLink(ctx context.Context, email string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	err := c.do(ctx, call{method: http.MethodPost, path: pathAdminRequestLink,
		in: models.AdminMagicLinkRequest{Email: email}, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminVerifyMagicLink(ctx context.Context, token string) (*models.TokensResponse, error) {
	return c.issue(ctx, call{method: http.MethodGet, path: pathAdminVerify,
		query: url.Values{"token": {token}}})
}

func (c *HTTPClient) issue(ctx context.Context, cl call) (*models.TokensResponse, error) {
	var out models.TokensResponse
	cl.out = &out
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%s: response carries no access token", cl.path)
	}
	return &out, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, call{method: http.MethodGet, path: pathMe, out: &out, auth: true}); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) Permissions(ctx context.Context) ([]string, error) {
	var out models.PermissionsResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: pathMePermissions, out: &out, auth: true}); err != nil {
		return nil, err
	}
	return out.Permissions, nil
}

// Refresh calls the refresh endpoint directly. It sends no bearer token and
// never triggers another refresh.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	var out models.RefreshResponse
	status, body, err := c.send(ctx, call{method: http.MethodPost, path: pathRefresh},
		mustJSON(models.RefreshRequest{RefreshToken: refreshToken}), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, newRequestError(status, body)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", pathRefresh, err)
	}
	if out.AccessToken == "" {
		return nil, errors.New("refresh response carries no access token")
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: pathLogout, auth: true})
}

// Ping reports whether the backend answers at all. Any status below 500
// counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	status, _, err := c.send(ctx, call{method: http.MethodGet, path: pathHealth}, nil, nil)
	if err != nil {
		return err
	}
	if status >= 500 {
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, status)
	}
	return nil
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

var _ Client = (*HTTPClient)(nil)
