package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/scapegis/scapegis-cli/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := NewStore()

	s.SetSignupEmail("new@example.com")
	s.SetPassword("hunter2hunter2")
	s.SetFlowType(models.FlowSignup)

	assert.Equal(t, "new@example.com", s.SignupEmail())
	assert.Equal(t, "hunter2hunter2", s.Password())
	assert.Equal(t, models.FlowSignup, s.FlowType())
	assert.Equal(t, 3, s.Len())

	s.ClearPassword()
	assert.Empty(t, s.Password())
	assert.Equal(t, 2, s.Len())
}

func TestStore_SetEmptyRemovesKey(t *testing.T) {
	s := NewStore()
	s.SetTempToken("tmp")
	s.SetTempToken("")
	assert.Equal(t, 0, s.Len())
}

func TestStore_Require(t *testing.T) {
	s := NewStore()
	s.SetSignupEmail("a@example.com")

	require.NoError(t, s.Require(KeySignupEmail))

	err := s.Require(KeySignupEmail, KeySignupTempToken)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDraftMissing))

	var me *MissingError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, KeySignupTempToken, me.Key)
}

func TestStore_Email_PrefersAuthEmail(t *testing.T) {
	s := NewStore()
	s.SetSignupEmail("signup@example.com")
	assert.Equal(t, "signup@example.com", s.Email())

	s.SetAuthEmail("login@example.com")
	assert.Equal(t, "login@example.com", s.Email())
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	s.SetSignupEmail("a@example.com")
	s.SetAuthEmail("a@example.com")
	s.SetTempToken("tmp")

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Email())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAuthEmail("a@example.com")
		}()
		go func() {
			defer wg.Done()
			_ = s.Email()
		}()
	}
	wg.Wait()
	assert.Equal(t, "a@example.com", s.AuthEmail())
}
