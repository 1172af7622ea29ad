package userRepo

import (
	"context"

	"atstay/models"
)

// UserRepository defines data access for user documents.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}
