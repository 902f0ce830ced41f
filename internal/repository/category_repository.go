package repository

import (
	"context"
	"errors"

	"esep-backend/internal/db"
	"esep-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	DB *db.Postgres
}

const categoryColumns = `id, name, description, actual_fee, offer_fee, image, features, is_active, created_at`

// List returns every category ordered by name; activeOnly narrows to the
// categories shown on the public portal.
func (r CategoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC`
	if activeOnly {
		query = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY name ASC`
	}
	rows, err := r.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r CategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id=$1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r CategoryRepository) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, actual_fee, offer_fee, image, features, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now())
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.Description, c.ActualFee, c.OfferFee, c.Image, c.Features, c.IsActive)
	return scanCategory(row)
}

func (r CategoryRepository) Update(ctx context.Context, id string, c domain.Category) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE categories
		SET name=$2, description=$3, actual_fee=$4, offer_fee=$5, image=$6, features=$7, is_active=$8
		WHERE id=$1
	`, id, c.Name, c.Description, c.ActualFee, c.OfferFee, c.Image, c.Features, c.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r CategoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE categories SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row interface {
	Scan(dest ...any) error
}) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.ActualFee,
		&c.OfferFee,
		&c.Image,
		&c.Features,
		&c.IsActive,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
