package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
)

const checklistColumns = `id, text, done, order_index, created_at, updated_at`

// SQLiteChecklistRepo implements ChecklistRepo over a DBTX.
type SQLiteChecklistRepo struct {
	conn db.DBTX
}

func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{conn: conn}
}

func (r *SQLiteChecklistRepo) Create(ctx context.Context, e *domain.ChecklistEntry) error {
	query := `INSERT INTO checklist_entries (text, done, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.conn.ExecContext(ctx, query, e.Text, boolToInt(e.Done), e.Order,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting checklist entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted checklist entry id: %w", err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteChecklistRepo) GetByID(ctx context.Context, id int64) (*domain.ChecklistEntry, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklist_entries WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var e domain.ChecklistEntry
	var doneInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&e.ID, &e.Text, &doneInt, &e.Order, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("checklist entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning checklist entry: %w", err)
	}
	return populateChecklistEntry(&e, doneInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteChecklistRepo) List(ctx context.Context) ([]*domain.ChecklistEntry, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklist_entries ORDER BY order_index, id`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing checklist entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ChecklistEntry
	for rows.Next() {
		var e domain.ChecklistEntry
		var doneInt int
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(&e.ID, &e.Text, &doneInt, &e.Order, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning checklist entry row: %w", err)
		}
		entry, err := populateChecklistEntry(&e, doneInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteChecklistRepo) Update(ctx context.Context, e *domain.ChecklistEntry) error {
	query := `UPDATE checklist_entries SET text = ?, done = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, e.Text, boolToInt(e.Done), e.Order,
		e.UpdatedAt.Format(time.RFC3339), e.ID)
	if err != nil {
		return fmt.Errorf("updating checklist entry: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM checklist_entries WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting checklist entry: %w", err)
	}
	return nil
}

func populateChecklistEntry(
	e *domain.ChecklistEntry,
	doneInt int,
	createdAtStr, updatedAtStr string,
) (*domain.ChecklistEntry, error) {
	e.Done = intToBool(doneInt)

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return e, nil
}
