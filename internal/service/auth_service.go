package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"esep-backend/internal/config"
	"esep-backend/internal/domain"
	"esep-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminStore is the admin-account lookup the auth service needs.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

type AuthService struct {
	Config config.Config
	Admins AdminStore
	Logger *slog.Logger
}

type AuthResult struct {
	Token     string
	User      domain.AdminUser
	ExpiresAt time.Time
}

type LoginInput struct {
	Username string
	Password string
}

// Login authenticates an admin account and issues a session token.
// The failure message never distinguishes an unknown username from a wrong
// password.
func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Admins.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !credentialMatches(user.Password, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// credentialMatches compares against the stored credential. Accounts
// seeded by the original portal store the password verbatim; accounts
// provisioned with a bcrypt hash are compared with bcrypt. Plaintext rows
// are a known weakness of the portal, kept rather than silently migrated.
func credentialMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

// HashPassword prepares a stored credential for newly created accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s AuthService) issueToken(user *domain.AdminUser) (*AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(s.Config.SessionTTL)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}
