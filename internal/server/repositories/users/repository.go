// Package users is the credential store: persistence of user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type Repository interface {
	// Create stores user and fills in ID and CreatedAt. A duplicate email,
	// compared case-insensitively, yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail matches email case-insensitively. common.ErrorNotFound
	// when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
