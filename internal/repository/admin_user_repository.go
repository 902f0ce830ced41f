package repository

import (
	"context"
	"errors"

	"esep-backend/internal/db"
	"esep-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AdminUserRepository struct {
	DB *db.Postgres
}

type CreateAdminUserParams struct {
	Username    string
	Password    string
	Role        domain.Role
	Permissions string
}

const adminColumns = `id, username, password, role, permissions, status, created_at`

// List returns all admin accounts in creation order.
func (r AdminUserRepository) List(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+adminColumns+`
		FROM admin_users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AdminUser
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r AdminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE username=$1`, username)
	u, err := scanAdminUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r AdminUserRepository) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id=$1`, id)
	u, err := scanAdminUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r AdminUserRepository) Create(ctx context.Context, p CreateAdminUserParams) (*domain.AdminUser, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password, role, permissions, status, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		RETURNING `+adminColumns,
		p.Username, p.Password, p.Role, p.Permissions, domain.AdminActive)
	return scanAdminUser(row)
}

func (r AdminUserRepository) SetStatus(ctx context.Context, id int64, status domain.AdminStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE admin_users SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAdminUser(row interface {
	Scan(dest ...any) error
}) (*domain.AdminUser, error) {
	var (
		u      domain.AdminUser
		role   string
		status string
	)
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&role,
		&u.Permissions,
		&status,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.AdminStatus(status)
	return &u, nil
}
