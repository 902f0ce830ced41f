package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esep-backend/internal/domain"
	"esep-backend/internal/server/authctx"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"username": "someadmin",
		"role":     string(role),
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter() chi.Router {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(testSecret))

		r.Get("/dashboard/stats", ok)
		r.Get("/registrations", ok)

		r.Group(func(r chi.Router) {
			r.Use(RequireMutator())
			r.Patch("/registrations/1/status", ok)
			r.Delete("/registrations/1", ok)
		})
		r.Group(func(r chi.Router) {
			r.Use(RequireSection(domain.SectionPanchayath))
			r.Post("/admin/panchayaths", ok)
		})
		r.Group(func(r chi.Router) {
			r.Use(RequireSection(domain.SectionCategories))
			r.Post("/admin/categories", ok)
		})
		r.Group(func(r chi.Router) {
			r.Use(RequireSection(domain.SectionAdmins))
			r.Get("/admin/users", ok)
		})
	})
	return r
}

func do(r chi.Router, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/registrations", "").Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/registrations", "not-a-jwt").Code)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "username": "x", "role": "Super Admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/registrations", otherKey).Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "username": "x", "role": "Super Admin",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	r := protectedRouter()
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/registrations", expired).Code)
}

func TestAuthMiddlewareSetsSession(t *testing.T) {
	var got *authctx.Session
	r := chi.NewRouter()
	r.Use(AuthMiddleware(testSecret))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		got = authctx.FromContext(r.Context())
	})

	do(r, http.MethodGet, "/", signToken(t, domain.RoleLocalAdmin))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "someadmin", got.Username)
	assert.Equal(t, domain.RoleLocalAdmin, got.Role)
}

func TestRoleAccessMatrix(t *testing.T) {
	r := protectedRouter()

	cases := []struct {
		role   domain.Role
		method string
		path   string
		want   int
	}{
		{domain.RoleSuperAdmin, http.MethodPatch, "/registrations/1/status", http.StatusOK},
		{domain.RoleSuperAdmin, http.MethodPost, "/admin/panchayaths", http.StatusOK},
		{domain.RoleSuperAdmin, http.MethodGet, "/admin/users", http.StatusOK},

		{domain.RoleLocalAdmin, http.MethodDelete, "/registrations/1", http.StatusOK},
		{domain.RoleLocalAdmin, http.MethodPost, "/admin/categories", http.StatusOK},
		{domain.RoleLocalAdmin, http.MethodGet, "/admin/users", http.StatusForbidden},

		{domain.RoleUserAdmin, http.MethodGet, "/dashboard/stats", http.StatusOK},
		{domain.RoleUserAdmin, http.MethodGet, "/registrations", http.StatusOK},
		{domain.RoleUserAdmin, http.MethodPatch, "/registrations/1/status", http.StatusForbidden},
		{domain.RoleUserAdmin, http.MethodDelete, "/registrations/1", http.StatusForbidden},
		{domain.RoleUserAdmin, http.MethodPost, "/admin/panchayaths", http.StatusForbidden},
		{domain.RoleUserAdmin, http.MethodPost, "/admin/categories", http.StatusForbidden},
		{domain.RoleUserAdmin, http.MethodGet, "/admin/users", http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := do(r, tc.method, tc.path, signToken(t, tc.role))
		assert.Equal(t, tc.want, rec.Code, "%s %s %s", tc.role, tc.method, tc.path)
	}
}

func TestUnknownRoleGetsReadOnlyAccess(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, domain.Role("Regional Admin"))

	// an unrecognized role can still read but never mutate
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/registrations", token).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPatch, "/registrations/1/status", token).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin/users", token).Code)
}
