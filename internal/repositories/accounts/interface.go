package accounts

import (
	"context"

	"github.com/dmitrijs2005/starly/internal/models"
)

// Repository describes the account reads and writes the auth service needs.
type Repository interface {
	// Create inserts a and returns it with ID set. A taken login yields an
	// error matching common.ErrAlreadyExists.
	Create(ctx context.Context, a *models.Account) (*models.Account, error)

	// GetByLogin returns common.ErrNotFound when no account has login.
	GetByLogin(ctx context.Context, login string) (*models.Account, error)
}
