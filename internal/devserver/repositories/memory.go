package repositories

import (
	"context"
	"strings"
	"sync"

	"github.com/scapegis/scapegis-cli/internal/common"
	"github.com/scapegis/scapegis-cli/internal/devserver/models"
)

type codeKey struct {
	purpose models.CodePurpose
	email   string
}

// InMemoryRepository keeps everything in maps guarded by one mutex. Emails
// are compared case-insensitively.
type InMemoryRepository struct {
	mu            sync.RWMutex
	accounts      map[string]*models.Account // by id
	emails        map[string]string          // email -> id
	pending       map[string]*models.PendingSignup
	codes         map[codeKey]*models.OneTimeCode
	links         map[string]*models.MagicLink
	refreshTokens map[string]*models.RefreshToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts:      make(map[string]*models.Account),
		emails:        make(map[string]string),
		pending:       make(map[string]*models.PendingSignup),
		codes:         make(map[codeKey]*models.OneTimeCode),
		links:         make(map[string]*models.MagicLink),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *InMemoryRepository) CreateAccount(ctx context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalize(a.Email)
	if _, ok := r.emails[email]; ok {
		return ErrAlreadyExists
	}
	if _, ok := r.accounts[a.ID]; ok {
		return ErrAlreadyExists
	}
	cp := *a
	r.accounts[a.ID] = &cp
	r.emails[email] = a.ID
	return nil
}

func (r *InMemoryRepository) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[normalize(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *r.accounts[id]
	return &cp, nil
}

func (r *InMemoryRepository) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryRepository) SavePending(ctx context.Context, p *models.PendingSignup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.pending[normalize(p.Email)] = &cp
	return nil
}

func (r *InMemoryRepository) Pending(ctx context.Context, email string) (*models.PendingSignup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pending[normalize(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryRepository) DeletePending(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, normalize(email))
	return nil
}

// SaveCode replaces any earlier code for the same purpose and email.
func (r *InMemoryRepository) SaveCode(ctx context.Context, c *models.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.codes[codeKey{c.Purpose, normalize(c.Email)}] = &cp
	return nil
}

func (r *InMemoryRepository) Code(ctx context.Context, purpose models.CodePurpose, email string) (*models.OneTimeCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codes[codeKey{purpose, normalize(email)}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryRepository) SaveMagicLink(ctx context.Context, l *models.MagicLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.links[l.TokenHash] = &cp
	return nil
}

func (r *InMemoryRepository) MagicLink(ctx context.Context, tokenHash string) (*models.MagicLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.links[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *InMemoryRepository) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refreshTokens[t.TokenHash]; ok {
		return ErrAlreadyExists
	}
	cp := *t
	r.refreshTokens[t.TokenHash] = &cp
	return nil
}

func (r *InMemoryRepository) FindRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.refreshTokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *InMemoryRepository) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.refreshTokens[tokenHash]; !ok {
		return common.ErrorNotFound
	}
	delete(r.refreshTokens, tokenHash)
	return nil
}

func (r *InMemoryRepository) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.refreshTokens {
		if t.UserID == userID {
			delete(r.refreshTokens, k)
		}
	}
	return nil
}
