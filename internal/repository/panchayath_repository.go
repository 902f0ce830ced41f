package repository

import (
	"context"

	"esep-backend/internal/db"
	"esep-backend/internal/domain"
)

type PanchayathRepository struct {
	DB *db.Postgres
}

// List returns all panchayaths ordered alphabetically.
func (r PanchayathRepository) List(ctx context.Context) ([]domain.Panchayath, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, district, created_at
		FROM panchayaths
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Panchayath
	for rows.Next() {
		var p domain.Panchayath
		if err := rows.Scan(&p.ID, &p.Name, &p.District, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r PanchayathRepository) Create(ctx context.Context, name, district string) (*domain.Panchayath, error) {
	var out domain.Panchayath
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO panchayaths (name, district, created_at)
		VALUES ($1, $2, now())
		RETURNING id, name, district, created_at
	`, name, district).Scan(&out.ID, &out.Name, &out.District, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r PanchayathRepository) Update(ctx context.Context, id int64, name, district string) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE panchayaths SET name=$2, district=$3 WHERE id=$1
	`, id, name, district)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r PanchayathRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM panchayaths WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
