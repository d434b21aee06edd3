// Package services implements the account logic of the development backend:
// signup with email verification, password and one-time-code login, Google
// sign-in, admin magic links and refresh token rotation.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	wire "github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/cryptox"
	"github.com/scapegis/scapegis-cli/internal/devserver/auth"
	"github.com/scapegis/scapegis-cli/internal/devserver/config"
	"github.com/scapegis/scapegis-cli/internal/devserver/models"
	"github.com/scapegis/scapegis-cli/internal/devserver/repositories"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"golang.org/x/time/rate"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Options are the knobs of AccountService.
type Options struct {
	JWTSecret      []byte
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	CodeTTL        time.Duration
	LinkTTL        time.Duration
	SendInterval   time.Duration
	SendBurst      int
	AdminDomain    string
	LinkBaseURL    string
	GoogleClientID string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		JWTSecret:      []byte(cfg.JWTSecret),
		AccessTTL:      cfg.AccessTTL,
		RefreshTTL:     cfg.RefreshTTL,
		CodeTTL:        cfg.CodeTTL,
		LinkTTL:        cfg.LinkTTL,
		SendInterval:   cfg.SendInterval,
		SendBurst:      cfg.SendBurst,
		AdminDomain:    cfg.AdminDomain,
		LinkBaseURL:    cfg.LinkBaseURL,
		GoogleClientID: cfg.GoogleClientID,
	}
}

// AccountService holds every account operation the HTTP layer exposes.
// Code and link redemption is serialized so each is used at most once.
type AccountService struct {
	repo     repositories.Repository
	notifier Notifier
	opts     Options
	log      logging.Logger
	now      func() time.Time

	mu sync.Mutex

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewAccountService(repo repositories.Repository, n Notifier, opts Options, log logging.Logger) *AccountService {
	return &AccountService{
		repo:     repo,
		notifier: n,
		opts:     opts,
		log:      log.With("component", "accounts"),
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdminEmail reports whether email belongs to the admin domain.
func (s *AccountService) IsAdminEmail(email string) bool {
	if s.opts.AdminDomain == "" {
		return false
	}
	return strings.HasSuffix(normalizeEmail(email), "@"+strings.ToLower(s.opts.AdminDomain))
}

func (s *AccountService) checkEmail(email string) (string, error) {
	email = normalizeEmail(email)
	if err := wire.ValidateEmail(email); err != nil {
		return "", invalid("email", "Please enter a valid email address")
	}
	return email, nil
}

// allowSend applies the per-email send limit shared by codes and links.
func (s *AccountService) allowSend(email string) error {
	if s.opts.SendInterval <= 0 {
		return nil
	}
	s.limMu.Lock()
	defer s.limMu.Unlock()

	lim, ok := s.limiters[email]
	if !ok {
		burst := s.opts.SendBurst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Every(s.opts.SendInterval), burst)
		s.limiters[email] = lim
	}
	if !lim.AllowN(s.now(), 1) {
		return ErrRateLimited
	}
	return nil
}

func (s *AccountService) lookup(ctx context.Context, email string) (*models.Account, error) {
	acc, err := s.repo.AccountByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	return acc, nil
}

// SignupInit reports whether email may continue. A nil error means the email
// belongs to an existing account.
func (s *AccountService) SignupInit(ctx context.Context, email string) error {
	email, err := s.checkEmail(email)
	if err != nil {
		return err
	}
	if s.IsAdminEmail(email) {
		return ErrAdminAccount
	}
	acc, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if acc == nil {
		return ErrUserNotFound
	}
	return nil
}

// SignupPassword stores a pending signup and mails a signup code. Calling it
// again replaces the password and the code.
func (s *AccountService) SignupPassword(ctx context.Context, email, password string) error {
	email, err := s.checkEmail(email)
	if err != nil {
		return err
	}
	if err := wire.ValidatePassword(password); err != nil {
		return invalid("password", "Password must be at least 8 characters")
	}
	if s.IsAdminEmail(email) {
		return ErrAdminAccount
	}
	acc, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if acc != nil {
		return ErrAlreadyRegistered
	}
	if err := s.allowSend(email); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repo.SavePending(ctx, &models.PendingSignup{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}); err != nil {
		return fmt.Errorf("error saving pending signup: %w", err)
	}
	return s.issueCode(ctx, email, models.PurposeSignup)
}

// SignupVerify redeems the signup code and returns the temp token that
// authorizes SignupComplete.
func (s *AccountService) SignupVerify(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if err := wire.ValidateCode(code); err != nil {
		return "", invalid("code", "Code must be exactly 6 digits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Pending(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return "", ErrNoPendingSignup
	}
	if err != nil {
		return "", fmt.Errorf("error loading pending signup: %w", err)
	}
	if err := s.redeemCode(ctx, email, models.PurposeSignup, code); err != nil {
		return "", err
	}

	temp, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}
	p.TempTokenHash = cryptox.HashToken(temp)
	p.TempExpires = s.now().Add(s.opts.CodeTTL)
	if err := s.repo.SavePending(ctx, p); err != nil {
		return "", fmt.Errorf("error saving pending signup: %w", err)
	}
	return temp, nil
}

// SignupComplete turns a verified pending signup into a developer account.
func (s *AccountService) SignupComplete(ctx context.Context, email, tempToken, name, birthday string) (*TokenPair, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	if _, err := time.Parse(time.DateOnly, birthday); err != nil {
		return nil, invalid("birthday", "Birthday must be a valid date formatted as YYYY-MM-DD")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Pending(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNoPendingSignup
	}
	if err != nil {
		return nil, fmt.Errorf("error loading pending signup: %w", err)
	}
	if tempToken == "" || p.TempTokenHash == "" ||
		!cryptox.EqualCodes(p.TempTokenHash, cryptox.HashToken(tempToken)) ||
		s.now().After(p.TempExpires) {
		return nil, ErrInvalidTempToken
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Birthday:     birthday,
		Role:         models.RoleDeveloper,
		Provider:     models.ProviderLocal,
		PasswordHash: p.PasswordHash,
		Verified:     true,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	if err := s.repo.DeletePending(ctx, email); err != nil {
		return nil, fmt.Errorf("error deleting pending signup: %w", err)
	}
	s.log.Info(ctx, "account created", "user_id", acc.ID, "provider", acc.Provider)
	return s.issuePair(ctx, acc)
}

// Login checks a password. Unknown emails and accounts without a password
// fail the same way as a wrong password.
func (s *AccountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	acc, err := s.lookup(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := cryptox.CheckPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issuePair(ctx, acc)
}

// RequestOTP mails a login code to an existing account.
func (s *AccountService) RequestOTP(ctx context.Context, email string) error {
	email, err := s.checkEmail(email)
	if err != nil {
		return err
	}
	if s.IsAdminEmail(email) {
		return ErrAdminAccount
	}
	acc, err := s.lookup(ctx, email)
	if err != nil {
		return err
	}
	if acc == nil {
		return ErrUserNotFound
	}
	if err := s.allowSend(email); err != nil {
		return err
	}
	return s.issueCode(ctx, email, models.PurposeLogin)
}

func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) (*TokenPair, error) {
	email = normalizeEmail(email)
	if err := wire.ValidateCode(code); err != nil {
		return nil, invalid("code", "Code must be exactly 6 digits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrUserNotFound
	}
	if err := s.redeemCode(ctx, email, models.PurposeLogin, code); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, acc)
}

// GoogleLogin signs in with a Google ID token, creating a developer account
// on first use. The token signature is not verified; only the audience and
// expiry are checked.
func (s *AccountService) GoogleLogin(ctx context.Context, idToken string) (*TokenPair, error) {
	if idToken == "" {
		return nil, ErrTokenRequired
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, ErrInvalidIDToken
	}
	if exp, err := claims.GetExpirationTime(); err != nil || (exp != nil && s.now().After(exp.Time)) {
		return nil, ErrInvalidIDToken
	}
	if s.opts.GoogleClientID != "" {
		aud, err := claims.GetAudience()
		if err != nil || !slices.Contains(aud, s.opts.GoogleClientID) {
			return nil, ErrInvalidIDToken
		}
	}

	email, _ := claims["email"].(string)
	email = normalizeEmail(email)
	if wire.ValidateEmail(email) != nil {
		return nil, ErrInvalidIDToken
	}
	if s.IsAdminEmail(email) {
		return nil, ErrAdminAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		name, _ := claims["name"].(string)
		picture, _ := claims["picture"].(string)
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		acc = &models.Account{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			AvatarURL: picture,
			Role:      models.RoleDeveloper,
			Provider:  models.ProviderGoogle,
			Verified:  true,
			CreatedAt: s.now(),
		}
		if err := s.repo.CreateAccount(ctx, acc); err != nil {
			return nil, fmt.Errorf("error creating account: %w", err)
		}
		s.log.Info(ctx, "account created", "user_id", acc.ID, "provider", acc.Provider)
	}
	return s.issuePair(ctx, acc)
}

// RequestMagicLink mails a single-use sign-in link to an admin email.
func (s *AccountService) RequestMagicLink(ctx context.Context, email string) error {
	email, err := s.checkEmail(email)
	if err != nil {
		return err
	}
	if !s.IsAdminEmail(email) {
		return ErrNotAdmin
	}
	if err := s.allowSend(email); err != nil {
		return err
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repo.SaveMagicLink(ctx, &models.MagicLink{
		TokenHash: cryptox.HashToken(token),
		Email:     email,
		Expires:   s.now().Add(s.opts.LinkTTL),
	}); err != nil {
		return fmt.Errorf("error saving magic link: %w", err)
	}
	return s.notifier.SendMagicLink(ctx, email, s.opts.LinkBaseURL+"?token="+url.QueryEscape(token))
}

// VerifyMagicLink redeems a link token, creating the admin account on first
// sign-in.
func (s *AccountService) VerifyMagicLink(ctx context.Context, token string) (*TokenPair, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, err := s.repo.MagicLink(ctx, cryptox.HashToken(token))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrInvalidLink
	}
	if err != nil {
		return nil, fmt.Errorf("error loading magic link: %w", err)
	}
	if link.Used {
		return nil, ErrLinkUsed
	}
	if s.now().After(link.Expires) {
		return nil, ErrLinkExpired
	}
	link.Used = true
	if err := s.repo.SaveMagicLink(ctx, link); err != nil {
		return nil, fmt.Errorf("error saving magic link: %w", err)
	}

	acc, err := s.lookup(ctx, link.Email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		acc = &models.Account{
			ID:        uuid.NewString(),
			Email:     link.Email,
			Name:      strings.SplitN(link.Email, "@", 2)[0],
			Role:      models.RoleAdmin,
			Provider:  models.ProviderAdminMagicLink,
			Verified:  true,
			CreatedAt: s.now(),
		}
		if err := s.repo.CreateAccount(ctx, acc); err != nil {
			return nil, fmt.Errorf("error creating account: %w", err)
		}
		s.log.Info(ctx, "account created", "user_id", acc.ID, "provider", acc.Provider)
	}
	return s.issuePair(ctx, acc)
}

// Authenticate resolves an access token to its account. Failures are
// common.ErrTokenExpired or common.ErrInvalidToken.
func (s *AccountService) Authenticate(ctx context.Context, accessToken string) (*models.Account, error) {
	userID, err := auth.GetUserIDFromToken(accessToken, s.opts.JWTSecret)
	if err != nil {
		return nil, err
	}
	acc, err := s.repo.AccountByID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("error loading account: %w", err)
	}
	return acc, nil
}

var rolePermissions = map[models.Role][]string{
	models.RoleAdmin: {
		"users:read", "users:write", "workspaces:read", "workspaces:manage", "billing:manage", "audit:read",
	},
	models.RoleDeveloper: {
		"workspaces:read", "projects:read", "projects:write", "maps:publish",
	},
}

// Permissions lists what role may do. Unknown roles get nothing.
func Permissions(role models.Role) []string {
	return slices.Clone(rolePermissions[role])
}

// Refresh rotates a refresh token: the presented token is deleted and a new
// pair issued.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefresh
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash := cryptox.HashToken(refreshToken)
	tok, err := s.repo.FindRefreshToken(ctx, hash)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrInvalidRefresh
	}
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if err := s.repo.DeleteRefreshToken(ctx, hash); err != nil {
		return nil, fmt.Errorf("error deleting refresh token: %w", err)
	}
	if s.now().After(tok.Expires) {
		return nil, ErrInvalidRefresh
	}

	acc, err := s.repo.AccountByID(ctx, tok.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrInvalidRefresh
	}
	if err != nil {
		return nil, fmt.Errorf("error loading account: %w", err)
	}
	return s.issuePair(ctx, acc)
}

// Logout revokes every refresh token of the user. Access tokens stay valid
// until they expire.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUserRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	s.log.Info(ctx, "signed out", "user_id", userID)
	return nil
}

// --- helpers below ---

func (s *AccountService) issueCode(ctx context.Context, email string, purpose models.CodePurpose) error {
	code, err := common.RandomDigits(common.VerificationCodeLength)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repo.SaveCode(ctx, &models.OneTimeCode{
		Email:   email,
		Purpose: purpose,
		Code:    code,
		Expires: s.now().Add(s.opts.CodeTTL),
	}); err != nil {
		return fmt.Errorf("error saving code: %w", err)
	}
	return s.notifier.SendCode(ctx, email, purpose, code)
}

// redeemCode must be called with s.mu held.
func (s *AccountService) redeemCode(ctx context.Context, email string, purpose models.CodePurpose, code string) error {
	c, err := s.repo.Code(ctx, purpose, email)
	if errors.Is(err, common.ErrorNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("error loading code: %w", err)
	}
	if c.Used {
		return ErrCodeUsed
	}
	if s.now().After(c.Expires) {
		return ErrCodeExpired
	}
	if !cryptox.EqualCodes(c.Code, code) {
		return ErrInvalidCode
	}
	c.Used = true
	if err := s.repo.SaveCode(ctx, c); err != nil {
		return fmt.Errorf("error saving code: %w", err)
	}
	return nil
}

func (s *AccountService) issuePair(ctx context.Context, acc *models.Account) (*TokenPair, error) {
	access, err := auth.GenerateToken(acc.ID, string(acc.Role), s.opts.JWTSecret, s.opts.AccessTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repo.CreateRefreshToken(ctx, &models.RefreshToken{
		TokenHash: cryptox.HashToken(refresh),
		UserID:    acc.ID,
		Expires:   s.now().Add(s.opts.RefreshTTL),
		CreatedAt: s.now(),
	}); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
