package flow

import (
	"errors"
	"net/http"
	"strings"

	"github.com/scapegis/scapegis-cli/internal/client/api"
	"github.com/scapegis/scapegis-cli/internal/client/models"
)

// Class is what a failed call means for the flow.
type Class int

const (
	ClassNone Class = iota
	ClassOther
	ClassNewUser
	ClassExistingUser
	ClassAdmin
	ClassRateLimited
	ClassExpired
	ClassAlreadyUsed
	ClassInvalid
	ClassUnavailable
	ClassValidation
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassNewUser:
		return "new-user"
	case ClassExistingUser:
		return "existing-user"
	case ClassAdmin:
		return "admin"
	case ClassRateLimited:
		return "rate-limited"
	case ClassExpired:
		return "expired"
	case ClassAlreadyUsed:
		return "already-used"
	case ClassInvalid:
		return "invalid"
	case ClassUnavailable:
		return "unavailable"
	case ClassValidation:
		return "validation"
	}
	return "other"
}

var codeClasses = map[string]Class{
	api.CodeUserNotFound:      ClassNewUser,
	api.CodeAlreadyRegistered: ClassExistingUser,
	api.CodeAdminAccount:      ClassAdmin,
	api.CodeRateLimited:       ClassRateLimited,
	api.CodeCodeExpired:       ClassExpired,
	api.CodeLinkExpired:       ClassExpired,
	api.CodeCodeUsed:          ClassAlreadyUsed,
	api.CodeInvalidCode:       ClassInvalid,
}

// Classify maps err to a Class. A structured backend code wins; without one
// the message text is matched against known phrases, which is how older
// backends have to be understood.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}
	if errors.Is(err, api.ErrUnavailable) {
		return ClassUnavailable
	}
	if isValidation(err) {
		return ClassValidation
	}

	if re, ok := api.AsRequestError(err); ok {
		if c, ok := codeClasses[re.Code]; ok {
			return c
		}
		if re.Status == http.StatusTooManyRequests {
			return ClassRateLimited
		}
		return classifyText(re.Message)
	}
	return classifyText(err.Error())
}

// classifyText is the substring compatibility shim.
func classifyText(msg string) Class {
	m := strings.ToLower(msg)
	switch {
	case containsAny(m, "not found", "does not exist", "no user"):
		return ClassNewUser
	case containsAny(m, "already registered", "already exists"):
		return ClassExistingUser
	case strings.Contains(m, "admin"):
		return ClassAdmin
	case containsAny(m, "429", "too many"):
		return ClassRateLimited
	case strings.Contains(m, "expired"):
		return ClassExpired
	case strings.Contains(m, "already used"):
		return ClassAlreadyUsed
	case strings.Contains(m, "invalid"):
		return ClassInvalid
	}
	return ClassOther
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	return errors.Is(err, models.ErrPasswordTooShort) ||
		errors.Is(err, models.ErrInvalidCode) ||
		errors.Is(err, models.ErrInvalidBirthday) ||
		errors.Is(err, models.ErrInvalidEmail)
}

// isNotFound reports a 404-shaped failure.
func isNotFound(err error) bool {
	if re, ok := api.AsRequestError(err); ok && re.Status == http.StatusNotFound {
		return true
	}
	return Classify(err) == ClassNewUser
}

// serverMessage returns the backend's own message, or "" when the client
// had to synthesize one.
func serverMessage(err error) string {
	re, ok := api.AsRequestError(err)
	if !ok {
		return ""
	}
	if strings.HasPrefix(re.Message, "HTTP ") {
		return ""
	}
	return re.Message
}
