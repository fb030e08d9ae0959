package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/refugio-dev/refugio/internal/domain"
	internal_errors "github.com/refugio-dev/refugio/internal/errors"
)

type MockJwtService struct {
	NewTokenFunc   func(user domain.User) (string, error)
	DecodeUserFunc func(jwtStr string) (*domain.User, error)
}

func (m *MockJwtService) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

func (m *MockJwtService) DecodeUser(jwtStr string) (*domain.User, error) {
	if m.DecodeUserFunc != nil {
		return m.DecodeUserFunc(jwtStr)
	}
	return &domain.User{}, nil
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	var issuedFor *domain.User
	jwtService := &MockJwtService{NewTokenFunc: func(user domain.User) (string, error) {
		issuedFor = &user
		return "signed-token", nil
	}}
	auth := NewAuth("admin", string(hash), jwtService)

	t.Run("valid credentials", func(t *testing.T) {
		issuedFor = nil
		token, err := auth.Login("admin", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		require.NotNil(t, issuedFor)
		assert.Equal(t, "admin", issuedFor.Name)
		assert.True(t, issuedFor.Admin)
	})

	t.Run("wrong password", func(t *testing.T) {
		issuedFor = nil
		_, err := auth.Login("admin", "wrong")
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Nil(t, issuedFor)
	})

	t.Run("unknown user", func(t *testing.T) {
		issuedFor = nil
		_, err := auth.Login("intruder", "hunter2")
		var statusErr *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Nil(t, issuedFor)
	})
}
