package services

import (
	"context"
	"fmt"

	"chat-backend/auth"
	"chat-backend/errors"
	"chat-backend/repositories"
)

type IAuthService interface {
	Register(ctx context.Context, email, password string) (Token, error)
	Login(ctx context.Context, email, password string) (Token, error)
}

type Token string

type AuthService struct {
	users  repositories.IUserRepository
	issuer *auth.TokenIssuer
}

func NewAuthService(users repositories.IUserRepository, issuer *auth.TokenIssuer) IAuthService {
	return &AuthService{users: users, issuer: issuer}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (Token, error) {
	// Business rules first: no expensive hashing for a request that can
	// never succeed.
	if err := auth.ValidateRegister(auth.RegisterRequest{Email: email, Password: password}); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// Hashing stays in the service layer so the repository never sees a
	// plain password.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, email, hashedPassword)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.Generate(userID, []string{"user"})
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		// Generic failure to prevent user enumeration.
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(user.ID, user.Roles)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
