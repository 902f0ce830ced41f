package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esep-backend/internal/config"
	"esep-backend/internal/domain"
	"esep-backend/internal/repository"
	"esep-backend/internal/service"
)

type singleAdminStore struct {
	user domain.AdminUser
}

func (s singleAdminStore) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	if username != s.user.Username {
		return nil, repository.ErrNotFound
	}
	u := s.user
	return &u, nil
}

func authRouter() chi.Router {
	svc := &service.AuthService{
		Config: config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour},
		Admins: singleAdminStore{user: domain.AdminUser{
			ID: 1, Username: "evaadmin", Password: "eva919123",
			Role: domain.RoleSuperAdmin, Status: domain.AdminActive,
		}},
		Logger: slog.Default(),
	}
	r := chi.NewRouter()
	AuthHandler{Service: svc}.RegisterRoutes(r)
	return r
}

func TestLoginSuccess(t *testing.T) {
	r := authRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":" evaadmin ","password":"eva919123"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := decodeBody(t, rec)
	payload := data.(map[string]any)
	assert.NotEmpty(t, payload["token"])
	user := payload["user"].(map[string]any)
	assert.Equal(t, "evaadmin", user["username"])
	assert.Equal(t, "Super Admin", user["role"])
}

func TestLoginRejected(t *testing.T) {
	r := authRouter()

	// unknown user and wrong password produce the same message
	for _, body := range []string{
		`{"username":"ghost","password":"whatever"}`,
		`{"username":"evaadmin","password":"wrong"}`,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		_, msg := decodeBody(t, rec)
		assert.Equal(t, "invalid username or password", msg)
	}
}
