package httpapi

import (
	"encoding/json"
	"net/http"

	wire "github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/devserver/models"
	"github.com/scapegis/scapegis-cli/internal/devserver/services"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// Handlers serves the identity endpoints on top of an AccountService.
type Handlers struct {
	accounts *services.AccountService
	log      logging.Logger
}

func NewHandlers(accounts *services.AccountService, log logging.Logger) *Handlers {
	return &Handlers{accounts: accounts, log: log}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict rejects unknown fields and trailing garbage.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return errBadRequest
	}
	if dec.More() {
		return errBadRequest
	}
	return nil
}

func tokens(p *services.TokenPair) wire.TokensResponse {
	return wire.TokensResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, TokenType: "bearer"}
}

func userOf(a *models.Account) wire.User {
	u := wire.User{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         wire.Role(a.Role),
		Birthday:     a.Birthday,
		IsVerified:   a.Verified,
		AuthProvider: wire.AuthProvider(a.Provider),
	}
	if a.AvatarURL != "" {
		avatar := a.AvatarURL
		u.AvatarURL = &avatar
	}
	return u
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.log, err)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) SignupInit(w http.ResponseWriter, r *http.Request) {
	var req wire.SignupInitRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.accounts.SignupInit(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.SignupInitResponse{Status: wire.StatusPasswordRequired, Email: req.Email})
}

func (h *Handlers) SignupPassword(w http.ResponseWriter, r *http.Request) {
	var req wire.SignupPasswordRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.accounts.SignupPassword(r.Context(), req.Email, req.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.SignupPasswordResponse{
		Status:  "verification_sent",
		Email:   req.Email,
		Message: "Verification code sent to your email",
	})
}

func (h *Handlers) SignupVerify(w http.ResponseWriter, r *http.Request) {
	var req wire.SignupVerifyRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	temp, err := h.accounts.SignupVerify(r.Context(), req.Email, req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.SignupVerifyResponse{Status: "profile_required", Email: req.Email, TempToken: temp})
}

func (h *Handlers) SignupComplete(w http.ResponseWriter, r *http.Request) {
	var req wire.SignupCompleteRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.accounts.SignupComplete(r.Context(), req.Email, req.TempToken, req.Name, req.Birthday)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens(pair))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req wire.LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens(pair))
}

func (h *Handlers) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req wire.OTPRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.accounts.RequestOTP(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Login code sent to your email"})
}

func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req wire.OTPVerifyRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.accounts.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens(pair))
}

func (h *Handlers) GoogleOAuth(w http.ResponseWriter, r *http.Request) {
	var req wire.GoogleOAuthRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.accounts.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens(pair))
}

func (h *Handlers) AdminRequestLink(w http.ResponseWriter, r *http.Request) {
	var req wire.AdminMagicLinkRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.accounts.RequestMagicLink(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Magic link sent to your email"})
}

func (h *Handlers) AdminVerify(w http.ResponseWriter, r *http.Request) {
	pair, err := h.accounts.VerifyMagicLink(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens(pair))
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userOf(accountFrom(r.Context())))
}

func (h *Handlers) MyPermissions(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	writeJSON(w, http.StatusOK, wire.PermissionsResponse{Permissions: services.Permissions(acc.Role)})
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req wire.RefreshRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	pair, err := h.accounts.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.RefreshResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context(), accountFrom(r.Context()).ID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Signed out"})
}
