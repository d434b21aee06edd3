package models

// Wire types for the REST identity contract. Field names follow the JSON
// the backend speaks.

type SignupInitRequest struct {
	Email string `json:"email"`
}

type SignupInitResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// StatusPasswordRequired is the only success status of signup init.
const StatusPasswordRequired = "password_required"

type SignupPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupPasswordResponse struct {
	Status  string `json:"status"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SignupVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type SignupVerifyResponse struct {
	Status    string `json:"status"`
	Email     string `json:"email"`
	TempToken string `json:"temp_token"`
}

type SignupCompleteRequest struct {
	Email     string `json:"email"`
	TempToken string `json:"temp_token"`
	Name      string `json:"name"`
	Birthday  string `json:"birthday"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type GoogleOAuthRequest struct {
	IDToken string `json:"id_token"`
}

type AdminMagicLinkRequest struct {
	Email string `json:"email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
}

// ErrorResponse is what the backend sends on a non-2xx status. Code is only
// present on backends that speak the structured error contract.
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
