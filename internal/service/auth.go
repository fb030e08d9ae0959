package service

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/refugio-dev/refugio/internal/domain"
	internal_errors "github.com/refugio-dev/refugio/internal/errors"
	"github.com/refugio-dev/refugio/internal/jwt"
)

type AuthService interface {
	Login(name, password string) (string, error)
}

// Auth checks the single config-provisioned admin account and issues
// session tokens.
type Auth struct {
	adminName         string
	adminPasswordHash string
	jwt               jwt.JwtService
}

func NewAuth(adminName, adminPasswordHash string, jwt jwt.JwtService) AuthService {
	return &Auth{adminName, adminPasswordHash, jwt}
}

func (a *Auth) Login(name, password string) (string, error) {
	if name != a.adminName {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.adminPasswordHash), []byte(password)); err != nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}

	return a.jwt.NewToken(domain.User{Name: name, Admin: true})
}
