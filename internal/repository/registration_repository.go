package repository

import (
	"context"
	"errors"

	"esep-backend/internal/db"
	"esep-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RegistrationRepository struct {
	DB *db.Postgres
}

type CreateRegistrationParams struct {
	CustomerID   string
	Name         string
	Address      string
	Mobile       string
	Panchayath   string
	Ward         string
	Category     string
	AgentDetails *string
	FeeAmount    int64
}

const registrationColumns = `id, customer_id, name, address, mobile, panchayath, ward, category, agent_details, status, fee_amount, created_at`

// List returns every registration, most recent first.
func (r RegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *reg)
	}
	return items, rows.Err()
}

func (r RegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id=$1`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ExistsByMobile backs the duplicate-registration check performed before
// every insert.
func (r RegistrationRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	var exists bool
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM registrations WHERE mobile=$1)
	`, mobile).Scan(&exists)
	return exists, err
}

func (r RegistrationRepository) Create(ctx context.Context, p CreateRegistrationParams) (*domain.Registration, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO registrations (customer_id, name, address, mobile, panchayath, ward, category, agent_details, status, fee_amount, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now())
		RETURNING `+registrationColumns,
		p.CustomerID, p.Name, p.Address, p.Mobile, p.Panchayath, p.Ward, p.Category, p.AgentDetails, domain.RegistrationPending, p.FeeAmount)
	return scanRegistration(row)
}

func (r RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE registrations SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r RegistrationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM registrations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByMobile returns the single registration for a mobile number.
// Zero rows and multiple rows both map to ErrNotFound: the status check
// promises exactly-one semantics rather than an arbitrary row.
func (r RegistrationRepository) FindByMobile(ctx context.Context, mobile string) (*domain.Registration, error) {
	return r.findExactlyOne(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE mobile=$1 LIMIT 2`, mobile)
}

// FindByCustomerID mirrors FindByMobile for the generated customer id.
func (r RegistrationRepository) FindByCustomerID(ctx context.Context, customerID string) (*domain.Registration, error) {
	return r.findExactlyOne(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE customer_id=$1 LIMIT 2`, customerID)
}

func (r RegistrationRepository) findExactlyOne(ctx context.Context, query string, arg any) (*domain.Registration, error) {
	rows, err := r.DB.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

func scanRegistration(row interface {
	Scan(dest ...any) error
}) (*domain.Registration, error) {
	var (
		reg    domain.Registration
		agent  pgtype.Text
		status string
	)
	if err := row.Scan(
		&reg.ID,
		&reg.CustomerID,
		&reg.Name,
		&reg.Address,
		&reg.Mobile,
		&reg.Panchayath,
		&reg.Ward,
		&reg.Category,
		&agent,
		&status,
		&reg.FeeAmount,
		&reg.CreatedAt,
	); err != nil {
		return nil, err
	}
	if agent.Valid {
		reg.AgentDetails = &agent.String
	}
	reg.Status = domain.RegistrationStatus(status)
	return &reg, nil
}
