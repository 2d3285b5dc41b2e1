package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, title, place, notes, day, variant_id, global_variant_id,
		order_index, group_id, datetime, pinned_time, duration_min, category,
		created_at, updated_at`

// SQLiteItemRepo implements ItemRepo over a DBTX, so the same repository
// works standalone or inside a UnitOfWork transaction.
type SQLiteItemRepo struct {
	conn db.DBTX
}

func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{conn: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, i *domain.Item) error {
	if i.ID != 0 {
		query := `INSERT INTO items (id, title, place, notes, day, variant_id, global_variant_id,
			order_index, group_id, datetime, pinned_time, duration_min, category, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := r.conn.ExecContext(ctx, query, i.ID, i.Title, i.Place, i.Notes,
			i.Day, i.VariantID, i.GlobalVariantID, i.Order, i.GroupID,
			nullableTimeToString(i.Datetime, time.RFC3339), boolToInt(i.PinnedTime),
			nullableIntToValue(i.DurationMin), string(i.Category),
			i.CreatedAt.Format(time.RFC3339), i.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}
		return nil
	}

	query := `INSERT INTO items (title, place, notes, day, variant_id, global_variant_id,
		order_index, group_id, datetime, pinned_time, duration_min, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query, i.Title, i.Place, i.Notes,
		i.Day, i.VariantID, i.GlobalVariantID, i.Order, i.GroupID,
		nullableTimeToString(i.Datetime, time.RFC3339), boolToInt(i.PinnedTime),
		nullableIntToValue(i.DurationMin), string(i.Category),
		i.CreatedAt.Format(time.RFC3339), i.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted item id: %w", err)
	}
	i.ID = id
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanItem(row)
}

func (r *SQLiteItemRepo) List(ctx context.Context) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY order_index, id`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) ListByGroup(ctx context.Context, groupID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE group_id = ? ORDER BY order_index, id`
	rows, err := r.conn.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing items by group: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) Update(ctx context.Context, i *domain.Item) error {
	query := `UPDATE items SET title = ?, place = ?, notes = ?, day = ?, variant_id = ?,
		global_variant_id = ?, order_index = ?, group_id = ?, datetime = ?, pinned_time = ?,
		duration_min = ?, category = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, i.Title, i.Place, i.Notes,
		i.Day, i.VariantID, i.GlobalVariantID, i.Order, i.GroupID,
		nullableTimeToString(i.Datetime, time.RFC3339), boolToInt(i.PinnedTime),
		nullableIntToValue(i.DurationMin), string(i.Category),
		i.UpdatedAt.Format(time.RFC3339), i.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id int64) error {
	// Transport segments referencing the item go with it (FK cascade).
	query := `DELETE FROM items WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) scanItem(row *sql.Row) (*domain.Item, error) {
	var i domain.Item
	var categoryStr string
	var datetimeStr sql.NullString
	var pinnedInt int
	var durationMin sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&i.ID, &i.Title, &i.Place, &i.Notes, &i.Day, &i.VariantID, &i.GlobalVariantID,
		&i.Order, &i.GroupID, &datetimeStr, &pinnedInt, &durationMin, &categoryStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	return populateItem(&i, categoryStr, datetimeStr, pinnedInt, durationMin, createdAtStr, updatedAtStr)
}

func (r *SQLiteItemRepo) scanItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		var i domain.Item
		var categoryStr string
		var datetimeStr sql.NullString
		var pinnedInt int
		var durationMin sql.NullInt64
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&i.ID, &i.Title, &i.Place, &i.Notes, &i.Day, &i.VariantID, &i.GlobalVariantID,
			&i.Order, &i.GroupID, &datetimeStr, &pinnedInt, &durationMin, &categoryStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}

		item, err := populateItem(&i, categoryStr, datetimeStr, pinnedInt, durationMin, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// populateItem fills in parsed fields on an Item after scanning raw values.
func populateItem(
	i *domain.Item,
	categoryStr string,
	datetimeStr sql.NullString,
	pinnedInt int,
	durationMin sql.NullInt64,
	createdAtStr, updatedAtStr string,
) (*domain.Item, error) {
	i.Category = domain.Category(categoryStr)
	i.PinnedTime = intToBool(pinnedInt)
	i.Datetime = parseNullableTime(datetimeStr, time.RFC3339)
	i.DurationMin = nullableIntFromNull(durationMin)

	var parseErr error
	i.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return i, nil
}
