package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/scapegis/scapegis-cli/internal/client/authstate"
	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/client/services"
	"github.com/scapegis/scapegis-cli/internal/client/session"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"golang.org/x/time/rate"
)

var (
	ErrThrottled    = errors.New("verification attempted too soon")
	ErrBusy         = errors.New("another request is in flight")
	ErrDraftMissing = session.ErrDraftMissing
)

const (
	DefaultVerifyThrottle = time.Second
	DefaultRedirectDelay  = time.Second
)

// Outcome is the result of one user action.
type Outcome struct {
	Step  models.Step
	Route models.Route

	// Message is an inline error for display; Info is a neutral notice.
	Message string
	Info    string

	// ClearCode asks the code step to empty all six inputs and refocus the
	// first one.
	ClearCode bool
	// RedirectAfter delays following Route.
	RedirectAfter time.Duration
	// Ignored is set when the action was dropped without a backend call.
	Ignored bool

	User *models.User
	Err  error
}

type Config struct {
	VerifyThrottle time.Duration
	RedirectDelay  time.Duration
}

type Controller struct {
	auth  services.AuthService
	draft *session.Store
	state *authstate.State
	log   logging.Logger

	limiter       *rate.Limiter
	redirectDelay time.Duration
	now           func() time.Time

	busy atomic.Bool
}

func NewController(auth services.AuthService, draft *session.Store, state *authstate.State, log logging.Logger, cfg Config) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	if cfg.VerifyThrottle <= 0 {
		cfg.VerifyThrottle = DefaultVerifyThrottle
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	return &Controller{
		auth:          auth,
		draft:         draft,
		state:         state,
		log:           log,
		limiter:       rate.NewLimiter(rate.Every(cfg.VerifyThrottle), 1),
		redirectDelay: cfg.RedirectDelay,
		now:           time.Now,
	}
}

// acquire marks the controller busy for one backend round trip.
func (c *Controller) acquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

func (c *Controller) release() {
	c.busy.Store(false)
}

func busyOutcome(step models.Step) Outcome {
	return Outcome{Step: step, Ignored: true, Err: ErrBusy}
}

func fail(step models.Step, msg string, err error) Outcome {
	return Outcome{Step: step, Message: msg, Err: err}
}

// SubmitEmail resolves whether email belongs to a new user, an existing user
// or an admin and starts the matching path. Going through this step always
// starts a fresh draft.
func (c *Controller) SubmitEmail(ctx context.Context, email string) Outcome {
	email = strings.TrimSpace(email)
	if err := models.ValidateEmail(email); err != nil {
		return fail(models.StepEmail, MsgInvalidEmail, err)
	}
	if !c.acquire() {
		return busyOutcome(models.StepEmail)
	}
	defer c.release()

	c.draft.Reset()
	log := c.log.With("email", logging.RedactEmail(email))

	resp, err := c.auth.SignupInit(ctx, email)
	if err == nil {
		if resp.Status != models.StatusPasswordRequired {
			log.Warn(ctx, "unexpected signup init status", "status", resp.Status)
			return fail(models.StepEmail, fmt.Sprintf("Unexpected response from server (%s)", resp.Status), nil)
		}
		log.Debug(ctx, "email belongs to an existing account")
		return c.startOTP(ctx, email)
	}

	class := Classify(err)
	log.Debug(ctx, "signup init failed", "class", class.String())

	switch class {
	case ClassNewUser:
		return c.toPasswordCreation(email, err)
	case ClassExistingUser:
		return c.startOTP(ctx, email)
	case ClassAdmin:
		return c.requestAdminLink(ctx, email)
	case ClassRateLimited:
		return fail(models.StepEmail, MsgRateLimited, err)
	default:
		return fail(models.StepEmail, err.Error(), err)
	}
}

func (c *Controller) toPasswordCreation(email string, cause error) Outcome {
	c.draft.SetSignupEmail(email)
	c.draft.SetFlowType(models.FlowSignup)
	return Outcome{Step: models.StepPassword, Route: models.RouteSignupPassword, Err: cause}
}

// startOTP sends a login code. A 404-shaped refusal means the account does
// not exist after all, so the user goes on to create a password.
func (c *Controller) startOTP(ctx context.Context, email string) Outcome {
	err := c.auth.RequestOTP(ctx, email)
	if err != nil {
		if isNotFound(err) {
			c.log.Info(ctx, "otp request found no account, switching to signup", "email", logging.RedactEmail(email))
			return c.toPasswordCreation(email, err)
		}
		if Classify(err) == ClassRateLimited {
			return fail(models.StepEmail, MsgRateLimited, err)
		}
		return fail(models.StepEmail, err.Error(), err)
	}

	c.draft.SetAuthEmail(email)
	c.draft.SetFlowType(models.FlowLogin)
	return Outcome{
		Step:  models.StepOTP,
		Route: models.RouteSignupVerify,
		Info:  fmt.Sprintf(MsgCodeSentTo, email),
	}
}

func (c *Controller) requestAdminLink(ctx context.Context, email string) Outcome {
	msg, err := c.auth.AdminRequestMagicLink(ctx, email)
	if err != nil {
		if Classify(err) == ClassRateLimited {
			return fail(models.StepEmail, MsgRateLimited, err)
		}
		return fail(models.StepEmail, err.Error(), err)
	}
	c.log.Debug(ctx, "magic link requested", "ack", msg)
	return Outcome{
		Step:  models.StepAdminLinkSent,
		Route: models.RouteAdminLogin,
		Info:  MsgMagicLinkSent,
	}
}

// SubmitPassword creates the password of a new account and triggers the
// verification code email. The password is dropped from the draft as soon as
// the call returns.
func (c *Controller) SubmitPassword(ctx context.Context, password string) Outcome {
	if err := c.draft.Require(session.KeySignupEmail); err != nil {
		return Outcome{Step: models.StepEmail, Route: models.RouteSignup, Err: err}
	}
	if err := models.ValidatePassword(password); err != nil {
		return fail(models.StepPassword, MsgPasswordTooShort, err)
	}
	if !c.acquire() {
		return busyOutcome(models.StepPassword)
	}
	defer c.release()

	email := c.draft.SignupEmail()
	c.draft.SetPassword(password)
	defer c.draft.ClearPassword()

	if _, err := c.auth.SignupPassword(ctx, email, password); err != nil {
		switch Classify(err) {
		case ClassRateLimited:
			return fail(models.StepPassword, MsgRateLimited, err)
		case ClassExistingUser:
			return Outcome{Step: models.StepEmail, Route: models.RouteLogin, Message: MsgAlreadyRegistered, Err: err}
		default:
			return fail(models.StepPassword, err.Error(), err)
		}
	}

	c.draft.SetFlowType(models.FlowSignup)
	c.draft.MarkSignupCodeSent()
	return Outcome{
		Step:  models.StepOTP,
		Route: models.RouteSignupVerify,
		Info:  fmt.Sprintf(MsgCodeSentTo, email),
	}
}

// SubmitCode verifies a six-digit code for whichever flow is active.
// Attempts closer together than the verify throttle are dropped, as are
// attempts made while another call is in flight.
func (c *Controller) SubmitCode(ctx context.Context, code string) Outcome {
	email := c.draft.Email()
	if email == "" {
		return Outcome{Step: models.StepEmail, Route: models.RouteSignup, Err: &session.MissingError{Key: session.KeySignupEmail}}
	}
	if err := models.ValidateCode(code); err != nil {
		return fail(models.StepOTP, MsgIncompleteCode, err)
	}
	if !c.acquire() {
		return busyOutcome(models.StepOTP)
	}
	defer c.release()

	if !c.limiter.AllowN(c.now(), 1) {
		return Outcome{Step: models.StepOTP, Ignored: true, Err: ErrThrottled}
	}

	if c.draft.FlowType() == models.FlowLogin {
		return c.verifyLogin(ctx, email, code)
	}
	return c.verifySignup(ctx, email, code)
}

func (c *Controller) verifySignup(ctx context.Context, email, code string) Outcome {
	tempToken, err := c.auth.SignupVerify(ctx, email, code)
	if err != nil {
		return codeFailure(err)
	}
	c.draft.SetTempToken(tempToken)
	c.draft.Delete(session.KeyAuthEmail, session.KeyAuthType)
	return Outcome{Step: models.StepProfile, Route: models.RouteSignupProfile}
}

func (c *Controller) verifyLogin(ctx context.Context, email, code string) Outcome {
	if err := c.auth.VerifyOTP(ctx, email, code); err != nil {
		return codeFailure(err)
	}
	c.draft.Reset()
	return c.signedIn(ctx, "")
}

func codeFailure(err error) Outcome {
	out := Outcome{Step: models.StepOTP, ClearCode: true, Err: err}
	switch Classify(err) {
	case ClassExpired:
		out.Message = MsgCodeExpired
	case ClassAlreadyUsed:
		out.Message = MsgCodeUsed
	case ClassRateLimited:
		out.Message = MsgRateLimited
	case ClassUnavailable:
		out.Message = err.Error()
	default:
		out.Message = MsgWrongCode
	}
	return out
}

// signedIn hydrates the auth state after tokens were issued and routes to
// the role's dashboard, or to route when one is given.
func (c *Controller) signedIn(ctx context.Context, route models.Route) Outcome {
	user, err := c.state.Hydrate(ctx)
	if err != nil {
		c.log.Warn(ctx, "load profile after sign-in", "error", err)
		return Outcome{Step: models.StepEmail, Route: models.RouteLogin, Message: MsgProfileLoadFailed, Err: err}
	}
	if route == models.RouteNone {
		route = user.Role.DashboardRoute()
	}
	c.log.Info(ctx, "signed in", "user_id", user.ID, "role", string(user.Role))
	return Outcome{Step: models.StepDone, Route: route, User: user}
}

// ResendCode asks for a new code. The signup flow no longer holds the
// password, so the user is sent back to enter it again.
func (c *Controller) ResendCode(ctx context.Context) Outcome {
	email := c.draft.Email()
	if email == "" {
		return Outcome{Step: models.StepEmail, Route: models.RouteSignup, Err: &session.MissingError{Key: session.KeySignupEmail}}
	}

	if c.draft.FlowType() != models.FlowLogin {
		return Outcome{Step: models.StepPassword, Route: models.RouteSignupPassword, Info: MsgReenterPassword, ClearCode: true}
	}

	if !c.acquire() {
		return busyOutcome(models.StepOTP)
	}
	defer c.release()

	if err := c.auth.RequestOTP(ctx, email); err != nil {
		return fail(models.StepOTP, MsgResendFailed, err)
	}
	return Outcome{Step: models.StepOTP, Info: MsgCodeResent, ClearCode: true}
}

// CompleteProfile finishes a signup. New accounts are always developers.
func (c *Controller) CompleteProfile(ctx context.Context, name, birthday string) Outcome {
	if err := c.draft.Require(session.KeySignupEmail, session.KeySignupTempToken); err != nil {
		return Outcome{Step: models.StepEmail, Route: models.RouteSignup, Err: err}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fail(models.StepProfile, MsgNameRequired, nil)
	}
	birthday = strings.TrimSpace(birthday)
	if err := models.ValidateBirthday(birthday); err != nil {
		return fail(models.StepProfile, MsgInvalidBirthday, err)
	}
	if !c.acquire() {
		return busyOutcome(models.StepProfile)
	}
	defer c.release()

	err := c.auth.SignupComplete(ctx, c.draft.SignupEmail(), c.draft.TempToken(), name, birthday)
	if err != nil {
		return fail(models.StepProfile, err.Error(), err)
	}

	c.draft.Reset()
	return c.signedIn(ctx, models.RouteDeveloperDashboard)
}

// LoginWithPassword is the classic email and password sign-in.
func (c *Controller) LoginWithPassword(ctx context.Context, email, password string) Outcome {
	email = strings.TrimSpace(email)
	if err := models.ValidateEmail(email); err != nil {
		return fail(models.StepEmail, MsgInvalidEmail, err)
	}
	if password == "" {
		return fail(models.StepPassword, MsgPasswordRequired, nil)
	}
	if !c.acquire() {
		return busyOutcome(models.StepPassword)
	}
	defer c.release()

	if err := c.auth.Login(ctx, email, password); err != nil {
		return fail(models.StepPassword, messageOr(err, MsgInvalidCredentials), err)
	}
	c.draft.Reset()
	return c.signedIn(ctx, "")
}

// LoginWithGoogle exchanges a Google ID token for a session.
func (c *Controller) LoginWithGoogle(ctx context.Context, idToken string) Outcome {
	if idToken == "" {
		return fail(models.StepEmail, MsgGoogleFailed, nil)
	}
	if !c.acquire() {
		return busyOutcome(models.StepEmail)
	}
	defer c.release()

	if err := c.auth.GoogleOAuth(ctx, idToken); err != nil {
		return fail(models.StepEmail, messageOr(err, MsgGoogleFailed), err)
	}
	c.draft.Reset()
	return c.signedIn(ctx, "")
}

// RequestAdminLink is the admin login page: it only ever sends a link.
func (c *Controller) RequestAdminLink(ctx context.Context, email string) Outcome {
	email = strings.TrimSpace(email)
	if err := models.ValidateEmail(email); err != nil {
		return fail(models.StepEmail, MsgInvalidEmail, err)
	}
	if !c.acquire() {
		return busyOutcome(models.StepEmail)
	}
	defer c.release()

	return c.requestAdminLink(ctx, email)
}

// VerifyAdminLink consumes the token from a magic link. On success the
// admin dashboard is reached after the configured redirect delay.
func (c *Controller) VerifyAdminLink(ctx context.Context, token string) Outcome {
	token = strings.TrimSpace(token)
	if token == "" {
		return Outcome{Step: models.StepAdminLinkSent, Route: models.RouteAdminLogin, Message: MsgNoToken}
	}
	if !c.acquire() {
		return busyOutcome(models.StepAdminLinkSent)
	}
	defer c.release()

	if err := c.auth.AdminVerifyMagicLink(ctx, token); err != nil {
		msg := messageOr(err, MsgLinkInvalid)
		if Classify(err) == ClassExpired {
			msg = MsgLinkExpired
		}
		return Outcome{Step: models.StepAdminLinkSent, Route: models.RouteAdminLogin, Message: msg, Err: err}
	}

	out := c.signedIn(ctx, models.RouteAdminDashboard)
	if out.Step == models.StepDone {
		out.Info = MsgSignedIn
		out.RedirectAfter = c.redirectDelay
	}
	return out
}

// Restart drops the draft and goes back to the email step.
func (c *Controller) Restart() Outcome {
	c.draft.Reset()
	return Outcome{Step: models.StepEmail, Route: models.RouteLogin}
}

// Logout ends the session on the backend when possible and always forgets
// it locally.
func (c *Controller) Logout(ctx context.Context) Outcome {
	if err := c.auth.Logout(ctx); err != nil {
		c.log.Warn(ctx, "logout", "error", err)
	}
	err := c.state.Logout(ctx)
	c.draft.Reset()
	return Outcome{Step: models.StepEmail, Route: models.RouteLogin, Err: err}
}

// Draft exposes the session draft to the presentation layer.
func (c *Controller) Draft() *session.Store {
	return c.draft
}

func messageOr(err error, fallback string) string {
	if msg := serverMessage(err); msg != "" {
		return msg
	}
	return fallback
}
