package repository

import (
	"context"

	"esep-backend/internal/domain"
)

// SeedDefaults inserts the three demo admin accounts of the portal.
// Passwords are stored as-is; the auth service also accepts bcrypt hashes
// for accounts provisioned later.
func (r AdminUserRepository) SeedDefaults(ctx context.Context) error {
	defaults := []struct {
		username    string
		password    string
		role        domain.Role
		permissions string
	}{
		{"evaadmin", "eva919123", domain.RoleSuperAdmin, "Full access to all features including role management"},
		{"admin1", "elife9094", domain.RoleLocalAdmin, "Can view, add, edit, and delete registrations and panchayaths"},
		{"admin2", "penny9094", domain.RoleUserAdmin, "Read-only access to view registrations only"},
	}

	for _, d := range defaults {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO admin_users (username, password, role, permissions, status, created_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (username) DO NOTHING
		`, d.username, d.password, d.role, d.permissions, domain.AdminActive)
		if err != nil {
			return err
		}
	}
	return nil
}
