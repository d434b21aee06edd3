package httpapi

import (
	"errors"
	"net/http"

	wire "github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/devserver/services"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

type apiError struct {
	status int
	code   string
	detail string
}

// errorTable is the single place service errors become HTTP answers. Codes
// are only sent where the client dispatches on them.
var errorTable = map[error]apiError{
	services.ErrUserNotFound:       {http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	services.ErrAlreadyRegistered:  {http.StatusConflict, "ALREADY_REGISTERED", "Email already registered"},
	services.ErrAdminAccount:       {http.StatusForbidden, "ADMIN_ACCOUNT", "This email belongs to an admin account. Use the admin login."},
	services.ErrNotAdmin:           {http.StatusForbidden, "", "Magic links are only sent to admin addresses"},
	services.ErrRateLimited:        {http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests"},
	services.ErrCodeExpired:        {http.StatusBadRequest, "CODE_EXPIRED", "Code has expired"},
	services.ErrCodeUsed:           {http.StatusBadRequest, "CODE_USED", "Code already used"},
	services.ErrInvalidCode:        {http.StatusBadRequest, "INVALID_CODE", "Invalid code"},
	services.ErrNoPendingSignup:    {http.StatusBadRequest, "", "No signup in progress for this email"},
	services.ErrInvalidTempToken:   {http.StatusBadRequest, "", "Signup session is no longer valid. Please start again."},
	services.ErrInvalidCredentials: {http.StatusUnauthorized, "", "Incorrect email or password"},
	services.ErrLinkExpired:        {http.StatusBadRequest, "LINK_EXPIRED", "Magic link has expired"},
	services.ErrLinkUsed:           {http.StatusBadRequest, "CODE_USED", "Magic link already used"},
	services.ErrInvalidLink:        {http.StatusBadRequest, "", "Invalid link token"},
	services.ErrTokenRequired:      {http.StatusBadRequest, "", "Token is required"},
	services.ErrInvalidRefresh:     {http.StatusUnauthorized, "", "Refresh token is not valid"},
	services.ErrInvalidIDToken:     {http.StatusUnauthorized, "", "Google sign-in could not be verified"},
	common.ErrInvalidToken:         {http.StatusUnauthorized, "", "Could not validate credentials"},
	common.ErrTokenExpired:         {http.StatusUnauthorized, "", "Token has expired"},
	errBadRequest:                  {http.StatusBadRequest, "", "Malformed request body"},
}

var errBadRequest = errors.New("malformed request body")

var internalError = apiError{http.StatusInternalServerError, "", "Internal server error"}

type validationItem struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

type validationBody struct {
	Detail []validationItem `json:"detail"`
}

func toHTTP(err error) apiError {
	for target, ae := range errorTable {
		if errors.Is(err, target) {
			return ae
		}
	}
	return internalError
}

// writeError writes err as {detail, code}. Validation errors use the list
// form of detail with status 422.
func writeError(w http.ResponseWriter, r *http.Request, fallback logging.Logger, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			Detail: []validationItem{{Loc: []string{"body", ve.Field}, Msg: ve.Msg}},
		})
		return
	}

	ae := toHTTP(err)
	log := logging.From(r.Context(), fallback)
	if ae.status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", "error", err)
	} else {
		log.Debug(r.Context(), "request rejected", "error", err, "status", ae.status)
	}
	writeJSON(w, ae.status, wire.ErrorResponse{Detail: ae.detail, Code: ae.code})
}
