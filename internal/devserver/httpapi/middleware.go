package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/devserver/models"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// Middleware is a plain net/http middleware.
type Middleware func(http.Handler) http.Handler

// statusWriter records the status and size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.count += n
	return n, err
}

// Recover turns a panic into a 500 without leaking its details.
func Recover(fallback logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logging.From(r.Context(), fallback).Error(r.Context(), "panic", "path", r.URL.Path, "reason", rec)
					writeError(w, r, fallback, common.ErrorInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID keeps the caller's X-Request-Id or assigns a fresh uuid, and
// echoes it on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(common.RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(common.RequestIDHeader, id)
			}
			w.Header().Set(common.RequestIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}

// Logging puts a request-scoped logger into the context and logs one line
// per request once it is served.
func Logging(l logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := l
			if rid := r.Header.Get(common.RequestIDHeader); rid != "" {
				reqLog = reqLog.With("request_id", rid)
			}
			r = r.WithContext(logging.Into(r.Context(), reqLog))

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r)

			reqLog.Info(r.Context(), "http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"dur", time.Since(start),
				"bytes", sw.count,
			)
		})
	}
}

type accountKey struct{}

func withAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, a)
}

func accountFrom(ctx context.Context) *models.Account {
	a, _ := ctx.Value(accountKey{}).(*models.Account)
	return a
}

// RequireBearer rejects requests without a valid access token and stores
// the authenticated account in the context.
func (h *Handlers) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
			writeError(w, r, h.log, common.ErrInvalidToken)
			return
		}
		token := strings.TrimSpace(header[len(common.BearerPrefix):])
		if token == "" {
			writeError(w, r, h.log, common.ErrInvalidToken)
			return
		}

		acc, err := h.accounts.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), acc)))
	})
}
