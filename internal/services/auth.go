// Package services holds the application services of starly: account
// registration/login and the film journal operations the session drives.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/cryptox"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/dmitrijs2005/starly/internal/repositories/accounts"
)

// hashPassword is an indirection used to facilitate testing.
var hashPassword = cryptox.HashPassword

// AuthService registers accounts and checks credentials. Authentication is
// exact-match on login and password with no lockout or expiry.
type AuthService struct {
	accounts accounts.Repository
	logger   logging.Logger
}

// NewAuthService constructs an AuthService over the given repository.
func NewAuthService(repo accounts.Repository, logger logging.Logger) *AuthService {
	return &AuthService{accounts: repo, logger: logger}
}

// Register creates an account. A taken login yields an error matching
// common.ErrAlreadyExists; blank fields yield common.ErrValidation.
func (s *AuthService) Register(ctx context.Context, name, login string, password []byte) (*models.Account, error) {
	if strings.TrimSpace(name) == "" || login == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: name, login and password are required", common.ErrValidation)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	a, err := s.accounts.Create(ctx, &models.Account{
		Name:     name,
		Login:    login,
		Password: hashed,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "account_id", a.ID, "login", login)
	return a, nil
}

// Login returns the account whose login and password both match, or
// common.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, login string, password []byte) (*models.Account, error) {
	a, err := s.accounts.GetByLogin(ctx, login)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	ok, err := cryptox.VerifyPassword(a.Password, password)
	if err != nil {
		s.logger.Warn(ctx, "stored credential unreadable", "account_id", a.ID, "error", err)
		return nil, common.ErrUnauthorized
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return a, nil
}
