package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/repository"
)

type AuthUsecase struct {
	userRepo  *repository.UserRepository
	jwtSecret []byte
}

func NewAuthUsecase(repo *repository.UserRepository, secret string) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  repo,
		jwtSecret: []byte(secret),
	}
}

// Login verifies admin credentials and mints a bearer token. Non-admin
// accounts are rejected here rather than at the middleware so the failure
// surfaces as invalid credentials, not as a privilege hint.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", errors.New("invalid credentials")
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	if !user.IsAdmin {
		return "", errors.New("invalid credentials")
	}

	if err := uc.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

// Identity resolves the current user for /auth/me. The admin flag is read
// from the users table on every call, not from the token, so revoking admin
// takes effect immediately.
func (uc *AuthUsecase) Identity(ctx context.Context, userID int) (*entities.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// EnsureAdmin creates a root admin if the account does not exist yet
// (called on startup).
func (uc *AuthUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if user != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entities.User{
		Email:        email,
		DisplayName:  "Admin",
		PasswordHash: string(hashed),
		IsAdmin:      true,
	}
	return uc.userRepo.Create(ctx, admin)
}
