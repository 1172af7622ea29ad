package user

import (
	"context"

	"atstay/models"
)

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts and authentication.
type UserService interface {
	Register(ctx context.Context, username, email, password, phone string) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}
