// Package httpapi is the REST surface of the development identity backend.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scapegis/scapegis-cli/internal/logging"
)

// Options configure NewRouter.
type Options struct {
	Logger   logging.Logger
	BasePath string // e.g. "/api/v1"; empty mounts at the root
}

// NewRouter wires middleware and every identity route.
func NewRouter(h *Handlers, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	root := chi.NewRouter()
	root.Use(
		Recover(log),
		RequestID(),
		Logging(log),
	)

	if opts.BasePath != "" && opts.BasePath != "/" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

func registerRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup/init", h.SignupInit)
		r.Post("/signup/password", h.SignupPassword)
		r.Post("/signup/verify", h.SignupVerify)
		r.Post("/signup/complete", h.SignupComplete)

		r.Post("/login", h.Login)
		r.Post("/login/request-otp", h.RequestOTP)
		r.Post("/login/verify-otp", h.VerifyOTP)

		r.Post("/oauth/google", h.GoogleOAuth)

		r.Post("/admin/request-link", h.AdminRequestLink)
		r.Get("/admin/verify", h.AdminVerify)

		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireBearer)
			r.Get("/me", h.Me)
			r.Get("/me/permissions", h.MyPermissions)
			r.Post("/logout", h.Logout)
		})
	})
}
