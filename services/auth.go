package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/store"
	"property-listing-service/utils"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles registration and credential exchange.
type AuthService struct {
	users    store.UserStore
	tokens   *utils.JWTManager
	validate Validator
	log      *slog.Logger
}

func NewAuthService(users store.UserStore, tokens *utils.JWTManager, v Validator, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, validate: v, log: log}
}

// Register creates a user with a bcrypt-hashed password. Emails are unique.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := s.validate.Validate(input); err != nil {
		return err
	}

	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domainerrors.Dependency("failed to check existing users", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return domainerrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return domainerrors.Dependency("failed to create user", err)
	}
	return nil
}

// Login verifies the credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := s.validate.Validate(input); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		return "", domainerrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		return "", domainerrors.Dependency("failed to look up user", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return "", domainerrors.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return "", domainerrors.Internal("failed to generate token", err)
	}
	return token, nil
}
