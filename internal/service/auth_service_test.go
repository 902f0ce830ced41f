package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"esep-backend/internal/config"
	"esep-backend/internal/domain"
	"esep-backend/internal/repository"
)

type fakeAdminStore struct {
	users map[string]*domain.AdminUser
}

func (f fakeAdminStore) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func newTestAuthService(users ...*domain.AdminUser) AuthService {
	store := fakeAdminStore{users: make(map[string]*domain.AdminUser)}
	for _, u := range users {
		store.users[u.Username] = u
	}
	return AuthService{
		Config: config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour},
		Admins: store,
		Logger: slog.Default(),
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService()
	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(&domain.AdminUser{
		ID: 1, Username: "evaadmin", Password: "eva919123", Role: domain.RoleSuperAdmin,
	})
	_, err := svc.Login(context.Background(), LoginInput{Username: "evaadmin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPlaintextCredential(t *testing.T) {
	svc := newTestAuthService(&domain.AdminUser{
		ID: 1, Username: "evaadmin", Password: "eva919123", Role: domain.RoleSuperAdmin,
	})

	res, err := svc.Login(context.Background(), LoginInput{Username: "evaadmin", Password: "eva919123"})
	require.NoError(t, err)
	assert.Equal(t, "evaadmin", res.User.Username)
	assert.NotEmpty(t, res.Token)
}

func TestLoginBcryptCredential(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := newTestAuthService(&domain.AdminUser{
		ID: 7, Username: "admin3", Password: string(hash), Role: domain.RoleLocalAdmin,
	})

	res, err := svc.Login(context.Background(), LoginInput{Username: "admin3", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLocalAdmin, res.User.Role)

	_, err = svc.Login(context.Background(), LoginInput{Username: "admin3", Password: "other"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginTokenClaims(t *testing.T) {
	svc := newTestAuthService(&domain.AdminUser{
		ID: 42, Username: "admin2", Password: "penny9094", Role: domain.RoleUserAdmin,
	})

	res, err := svc.Login(context.Background(), LoginInput{Username: "admin2", Password: "penny9094"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(res.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "admin2", claims["username"])
	assert.Equal(t, "User Admin", claims["role"])

	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, 5*time.Second)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("elife9094")
	require.NoError(t, err)
	assert.True(t, credentialMatches(hash, "elife9094"))
	assert.False(t, credentialMatches(hash, "elife9095"))
}
