package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"crane-safety-service/internal/auth"
	"crane-safety-service/internal/model"
	"crane-safety-service/internal/repository"
)

const (
	minUsernameLength = 2
	minPasswordLength = 6
)

type AuthService struct {
	users  *repository.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(users *repository.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Login verifies credentials and issues an access token. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username        *string
	CurrentPassword *string
	NewPassword     *string
}

// UpdateProfile applies self-service username and password changes. A
// username change re-issues the token so its claims stay current; the new
// token is returned alongside the user, empty otherwise.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*model.User, string, error) {
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < minUsernameLength {
			return nil, "", fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLength)
		}
		taken, err := s.users.UsernameTaken(ctx, username, userID)
		if err != nil {
			return nil, "", err
		}
		if taken {
			return nil, "", fmt.Errorf("%w: username is already taken", ErrConflict)
		}
		if err := s.users.UpdateUsername(ctx, userID, username); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrNotFound
			}
			return nil, "", err
		}
	}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil || *input.CurrentPassword == "" {
			return nil, "", fmt.Errorf("%w: current password is required to set a new password", ErrInvalidInput)
		}
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrNotFound
			}
			return nil, "", err
		}
		if !auth.CheckPassword(*input.CurrentPassword, user.PasswordHash) {
			return nil, "", fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
		}
		if len(*input.NewPassword) < minPasswordLength {
			return nil, "", fmt.Errorf("%w: new password must be at least %d characters", ErrInvalidInput, minPasswordLength)
		}
		hash, err := auth.HashPassword(*input.NewPassword)
		if err != nil {
			return nil, "", err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrNotFound
			}
			return nil, "", err
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	token := ""
	if input.Username != nil {
		if token, err = s.issuer.Issue(user); err != nil {
			return nil, "", err
		}
	}
	return user, token, nil
}
