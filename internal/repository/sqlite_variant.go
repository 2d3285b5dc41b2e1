package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
)

const variantColumns = `id, name, start_date, end_date, cities, created_at, updated_at`

// SQLiteVariantRepo implements VariantRepo over a DBTX.
type SQLiteVariantRepo struct {
	conn db.DBTX
}

func NewSQLiteVariantRepo(conn db.DBTX) *SQLiteVariantRepo {
	return &SQLiteVariantRepo{conn: conn}
}

func (r *SQLiteVariantRepo) Create(ctx context.Context, v *domain.Variant) error {
	cities, err := marshalCities(v.Cities)
	if err != nil {
		return err
	}
	query := `INSERT INTO variants (id, name, start_date, end_date, cities, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query, v.ID, v.Name,
		nullableTimeToString(v.StartDate, dateLayout),
		nullableTimeToString(v.EndDate, dateLayout),
		cities,
		v.CreatedAt.Format(time.RFC3339), v.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting variant: %w", err)
	}
	return nil
}

func (r *SQLiteVariantRepo) GetByID(ctx context.Context, id string) (*domain.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var v domain.Variant
	var startStr, endStr sql.NullString
	var citiesStr string
	var createdAtStr, updatedAtStr string

	err := row.Scan(&v.ID, &v.Name, &startStr, &endStr, &citiesStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("variant: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning variant: %w", err)
	}
	return populateVariant(&v, startStr, endStr, citiesStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteVariantRepo) List(ctx context.Context) ([]*domain.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants ORDER BY created_at, id`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	var variants []*domain.Variant
	for rows.Next() {
		var v domain.Variant
		var startStr, endStr sql.NullString
		var citiesStr string
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(&v.ID, &v.Name, &startStr, &endStr, &citiesStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning variant row: %w", err)
		}
		variant, err := populateVariant(&v, startStr, endStr, citiesStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variants: %w", err)
	}
	return variants, nil
}

func (r *SQLiteVariantRepo) Update(ctx context.Context, v *domain.Variant) error {
	cities, err := marshalCities(v.Cities)
	if err != nil {
		return err
	}
	query := `UPDATE variants SET name = ?, start_date = ?, end_date = ?, cities = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query, v.Name,
		nullableTimeToString(v.StartDate, dateLayout),
		nullableTimeToString(v.EndDate, dateLayout),
		cities,
		v.UpdatedAt.Format(time.RFC3339), v.ID)
	if err != nil {
		return fmt.Errorf("updating variant: %w", err)
	}
	return nil
}

func (r *SQLiteVariantRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM variants WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting variant: %w", err)
	}
	return nil
}

func marshalCities(cities []string) (string, error) {
	if cities == nil {
		cities = []string{}
	}
	b, err := json.Marshal(cities)
	if err != nil {
		return "", fmt.Errorf("encoding cities: %w", err)
	}
	return string(b), nil
}

func populateVariant(
	v *domain.Variant,
	startStr, endStr sql.NullString,
	citiesStr string,
	createdAtStr, updatedAtStr string,
) (*domain.Variant, error) {
	v.StartDate = parseNullableTime(startStr, dateLayout)
	v.EndDate = parseNullableTime(endStr, dateLayout)

	if citiesStr != "" {
		if err := json.Unmarshal([]byte(citiesStr), &v.Cities); err != nil {
			return nil, fmt.Errorf("decoding cities: %w", err)
		}
	}

	var parseErr error
	v.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	v.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return v, nil
}
