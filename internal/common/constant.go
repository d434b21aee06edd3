// Package common contains shared constants and helpers used by the ScapeGIS
// client and the development backend.
package common

// Header names used on every request to the identity backend.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-Id"
	BearerPrefix        = "Bearer "
)

// VerificationCodeLength is the number of digits in a one-time code.
const VerificationCodeLength = 6
