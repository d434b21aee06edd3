package httpapi

import (
	"context"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/scapegis/scapegis-cli/internal/devserver/models"
	"github.com/scapegis/scapegis-cli/internal/devserver/repositories"
	"github.com/scapegis/scapegis-cli/internal/devserver/services"
	"github.com/scapegis/scapegis-cli/internal/logging"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	mu    sync.Mutex
	codes map[string]string
	links []string
}

func (o *outbox) SendCode(_ context.Context, email string, _ models.CodePurpose, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes[email] = code
	return nil
}

func (o *outbox) SendMagicLink(_ context.Context, _ string, link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.links = append(o.links, link)
	return nil
}

func (o *outbox) code(t *testing.T, email string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.codes[email]
	require.True(t, ok, "no code sent to %s", email)
	return c
}

func (o *outbox) linkToken(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.links)
	u, err := url.Parse(o.links[len(o.links)-1])
	require.NoError(t, err)
	return u.Query().Get("token")
}

type backend struct {
	srv      *httptest.Server
	outbox   *outbox
	accounts *services.AccountService
}

func (b *backend) baseURL() string { return b.srv.URL + "/api/v1" }

func newBackend(t *testing.T) *backend {
	t.Helper()
	ob := &outbox{codes: make(map[string]string)}
	svc := services.NewAccountService(repositories.NewInMemoryRepository(), ob, services.Options{
		JWTSecret:   []byte("test-secret"),
		AccessTTL:   15 * time.Minute,
		RefreshTTL:  time.Hour,
		CodeTTL:     10 * time.Minute,
		LinkTTL:     10 * time.Minute,
		AdminDomain: "scapegis.com",
		LinkBaseURL: "http://localhost:3000/admin/verify",
	}, logging.Nop())

	router := NewRouter(NewHandlers(svc, logging.Nop()), Options{BasePath: "/api/v1"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &backend{srv: srv, outbox: ob, accounts: svc}
}
