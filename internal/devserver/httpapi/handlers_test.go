package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	wire "github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, bearer string, body any) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decodeError(t *testing.T, body []byte) wire.ErrorResponse {
	t.Helper()
	var e wire.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestHealth(t *testing.T) {
	b := newBackend(t)
	resp, body := doJSON(t, http.MethodGet, b.baseURL()+"/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(common.RequestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	b := newBackend(t)
	req, err := http.NewRequest(http.MethodGet, b.baseURL()+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeader, "req-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get(common.RequestIDHeader))
}

func TestSignupInit_Errors(t *testing.T) {
	b := newBackend(t)
	url := b.baseURL() + "/auth/signup/init"

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"unknown email", wire.SignupInitRequest{Email: "new@example.com"}, http.StatusNotFound, "USER_NOT_FOUND"},
		{"admin email", wire.SignupInitRequest{Email: "boss@scapegis.com"}, http.StatusForbidden, "ADMIN_ACCOUNT"},
		{"unknown field", `{"email":"a@example.com","extra":1}`, http.StatusBadRequest, ""},
		{"not json", `nope`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, url, "", tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, body)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Detail)
		})
	}
}

func TestValidationErrorUsesListDetail(t *testing.T) {
	b := newBackend(t)
	resp, body := doJSON(t, http.MethodPost, b.baseURL()+"/auth/signup/password", "",
		wire.SignupPasswordRequest{Email: "a@example.com", Password: "short"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var v validationBody
	require.NoError(t, json.Unmarshal(body, &v))
	require.Len(t, v.Detail, 1)
	assert.Equal(t, []string{"body", "password"}, v.Detail[0].Loc)
	assert.Contains(t, v.Detail[0].Msg, "8 characters")
}

func TestSignupOverHTTP(t *testing.T) {
	b := newBackend(t)
	base := b.baseURL()

	resp, body := doJSON(t, http.MethodPost, base+"/auth/signup/password", "",
		wire.SignupPasswordRequest{Email: "dev@example.com", Password: "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodPost, base+"/auth/signup/verify", "",
		wire.SignupVerifyRequest{Email: "dev@example.com", Code: "12345x"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodPost, base+"/auth/signup/verify", "",
		wire.SignupVerifyRequest{Email: "dev@example.com", Code: b.outbox.code(t, "dev@example.com")})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var verified wire.SignupVerifyResponse
	require.NoError(t, json.Unmarshal(body, &verified))
	require.NotEmpty(t, verified.TempToken)

	resp, body = doJSON(t, http.MethodPost, base+"/auth/signup/complete", "", wire.SignupCompleteRequest{
		Email: "dev@example.com", TempToken: verified.TempToken, Name: "Dev", Birthday: "1991-05-06",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var toks wire.TokensResponse
	require.NoError(t, json.Unmarshal(body, &toks))
	assert.Equal(t, "bearer", toks.TokenType)

	resp, body = doJSON(t, http.MethodGet, base+"/auth/me", toks.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var me wire.User
	require.NoError(t, json.Unmarshal(body, &me))
	require.NoError(t, me.Validate())
	assert.Equal(t, wire.RoleDeveloper, me.Role)
	assert.Equal(t, wire.ProviderLocal, me.AuthProvider)
	assert.Nil(t, me.AvatarURL)

	resp, body = doJSON(t, http.MethodGet, base+"/auth/me/permissions", toks.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var perms wire.PermissionsResponse
	require.NoError(t, json.Unmarshal(body, &perms))
	assert.Contains(t, perms.Permissions, "projects:write")

	resp, body = doJSON(t, http.MethodPost, base+"/auth/signup/init", "", wire.SignupInitRequest{Email: "dev@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var initResp wire.SignupInitResponse
	require.NoError(t, json.Unmarshal(body, &initResp))
	assert.Equal(t, wire.StatusPasswordRequired, initResp.Status)

	resp, body = doJSON(t, http.MethodPost, base+"/auth/signup/password", "",
		wire.SignupPasswordRequest{Email: "dev@example.com", Password: "password1"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_REGISTERED", decodeError(t, body).Code)
}

func TestProtectedRoutes(t *testing.T) {
	b := newBackend(t)
	base := b.baseURL()

	for _, path := range []string{"/auth/me", "/auth/me/permissions"} {
		resp, _ := doJSON(t, http.MethodGet, base+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp, _ = doJSON(t, http.MethodGet, base+path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	resp, _ := doJSON(t, http.MethodPost, base+"/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminMagicLinkOverHTTP(t *testing.T) {
	b := newBackend(t)
	base := b.baseURL()

	resp, body := doJSON(t, http.MethodPost, base+"/auth/admin/request-link", "", wire.AdminMagicLinkRequest{Email: "dev@example.com"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, decodeError(t, body).Code)

	resp, _ = doJSON(t, http.MethodPost, base+"/auth/admin/request-link", "", wire.AdminMagicLinkRequest{Email: "boss@scapegis.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := b.outbox.linkToken(t)

	resp, body = doJSON(t, http.MethodGet, base+"/auth/admin/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, http.MethodGet, base+"/auth/admin/verify?token="+token, "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CODE_USED", decodeError(t, body).Code)

	resp, body = doJSON(t, http.MethodGet, base+"/auth/admin/verify", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Token is required", decodeError(t, body).Detail)
}

func TestRefreshAndLogoutOverHTTP(t *testing.T) {
	b := newBackend(t)
	base := b.baseURL()

	resp, _ := doJSON(t, http.MethodPost, base+"/auth/admin/request-link", "", wire.AdminMagicLinkRequest{Email: "boss@scapegis.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := doJSON(t, http.MethodGet, base+"/auth/admin/verify?token="+b.outbox.linkToken(t), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toks wire.TokensResponse
	require.NoError(t, json.Unmarshal(body, &toks))

	resp, body = doJSON(t, http.MethodPost, base+"/auth/refresh", "", wire.RefreshRequest{RefreshToken: toks.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var next wire.RefreshResponse
	require.NoError(t, json.Unmarshal(body, &next))
	require.NotEmpty(t, next.RefreshToken)

	resp, _ = doJSON(t, http.MethodPost, base+"/auth/refresh", "", wire.RefreshRequest{RefreshToken: toks.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/auth/logout", next.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/auth/refresh", "", wire.RefreshRequest{RefreshToken: next.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecover(t *testing.T) {
	h := Recover(logging.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec.Body.Bytes()).Detail)
}
