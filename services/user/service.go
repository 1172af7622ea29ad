package user

import (
	"context"
	"strings"
	"time"

	userRepo "atstay/database/repository/user"
	"atstay/models"
	"atstay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// DefaultUserService is the production UserService implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, username, email, password, phone string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, utils.ValidationError("username, email and password are required")
	}
	if len(password) < 8 {
		return nil, utils.ValidationError("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.InternalError("Failed to check existing account", err)
	}
	if existing != nil {
		return nil, utils.ConflictError("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, utils.InternalError("Failed to create account", err)
	}

	return s.issueToken(ctx, usr)
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, utils.InternalError("authentication failed, please try again", err)
	}
	if usr == nil {
		return nil, utils.ForbiddenError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ForbiddenError("invalid email or password")
	}

	return s.issueToken(ctx, usr)
}

// issueToken signs a JWT and caches its hash so the auth middleware can skip
// the DB lookup on the hot path.
func (s *DefaultUserService) issueToken(ctx context.Context, usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return nil, utils.InternalError("Failed to sign token", err)
	}

	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := authCache.Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth token", zap.String("userID", usr.ID), zap.Error(err))
	}

	return &AuthResponse{Token: token, User: usr}, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch user", err)
	}
	if usr == nil {
		return nil, utils.NotFoundError("User not found")
	}
	return usr, nil
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return utils.ValidationError("FCM token is required")
	}
	if err := s.Repo.UpdateFCMToken(ctx, userID, token); err != nil {
		return utils.InternalError("Failed to update FCM token", err)
	}
	return nil
}
