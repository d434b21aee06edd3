package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrRequestFailed = errors.New("request failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnavailable   = errors.New("server unavailable")
)

// Structured error codes sent by backends that support them.
const (
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeAlreadyRegistered = "ALREADY_REGISTERED"
	CodeAdminAccount      = "ADMIN_ACCOUNT"
	CodeRateLimited       = "RATE_LIMITED"
	CodeCodeExpired       = "CODE_EXPIRED"
	CodeCodeUsed          = "CODE_USED"
	CodeInvalidCode       = "INVALID_CODE"
	CodeLinkExpired       = "LINK_EXPIRED"
)

// RequestError is a non-2xx answer from the backend. Message is meant for
// display; Code is empty when the backend did not send one.
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// errorBody accepts both {"detail": "..."} and the list form
// {"detail": [{"msg": "..."}]} some validators produce.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

func newRequestError(status int, body []byte) *RequestError {
	e := &RequestError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Code = eb.Code
		e.Message = detailMessage(eb.Detail)
		if e.Message == "" {
			e.Message = eb.Message
		}
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", status)
	}
	return e
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []detailItem
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// AsRequestError unwraps err into a *RequestError when it is one.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
