package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wayplan/internal/db"
	"wayplan/internal/domain"
)

const segmentColumns = `id, from_item_id, to_item_id, mode,
		duration_calc_min, duration_override_min, created_at, updated_at`

// SQLiteSegmentRepo implements SegmentRepo over a DBTX.
type SQLiteSegmentRepo struct {
	conn db.DBTX
}

func NewSQLiteSegmentRepo(conn db.DBTX) *SQLiteSegmentRepo {
	return &SQLiteSegmentRepo{conn: conn}
}

// Upsert writes the segment keyed by its deterministic pair ID. Re-running
// for the same adjacency replaces the previous estimate.
func (r *SQLiteSegmentRepo) Upsert(ctx context.Context, s *domain.TransportSegment) error {
	if s.ID == "" {
		s.ID = domain.SegmentID(s.FromItemID, s.ToItemID)
	}
	query := `INSERT INTO transport_segments (id, from_item_id, to_item_id, mode,
		duration_calc_min, duration_override_min, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			duration_calc_min = excluded.duration_calc_min,
			duration_override_min = excluded.duration_override_min,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query, s.ID, s.FromItemID, s.ToItemID, string(s.Mode),
		nullableIntToValue(s.DurationCalcMin), nullableIntToValue(s.DurationOverrideMin),
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting transport segment: %w", err)
	}
	return nil
}

func (r *SQLiteSegmentRepo) GetByID(ctx context.Context, id string) (*domain.TransportSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM transport_segments WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	var s domain.TransportSegment
	var modeStr string
	var calcMin, overrideMin sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.FromItemID, &s.ToItemID, &modeStr,
		&calcMin, &overrideMin, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("transport segment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning transport segment: %w", err)
	}
	return populateSegment(&s, modeStr, calcMin, overrideMin, createdAtStr, updatedAtStr)
}

func (r *SQLiteSegmentRepo) List(ctx context.Context) ([]*domain.TransportSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM transport_segments ORDER BY id`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transport segments: %w", err)
	}
	defer rows.Close()

	var segments []*domain.TransportSegment
	for rows.Next() {
		var s domain.TransportSegment
		var modeStr string
		var calcMin, overrideMin sql.NullInt64
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(&s.ID, &s.FromItemID, &s.ToItemID, &modeStr,
			&calcMin, &overrideMin, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning transport segment row: %w", err)
		}
		seg, err := populateSegment(&s, modeStr, calcMin, overrideMin, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transport segments: %w", err)
	}
	return segments, nil
}

func (r *SQLiteSegmentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM transport_segments WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting transport segment: %w", err)
	}
	return nil
}

// DeleteByItem removes every segment touching the item, in either direction.
func (r *SQLiteSegmentRepo) DeleteByItem(ctx context.Context, itemID int64) error {
	query := `DELETE FROM transport_segments WHERE from_item_id = ? OR to_item_id = ?`
	if _, err := r.conn.ExecContext(ctx, query, itemID, itemID); err != nil {
		return fmt.Errorf("deleting transport segments for item: %w", err)
	}
	return nil
}

func populateSegment(
	s *domain.TransportSegment,
	modeStr string,
	calcMin, overrideMin sql.NullInt64,
	createdAtStr, updatedAtStr string,
) (*domain.TransportSegment, error) {
	s.Mode = domain.TransportMode(modeStr)
	s.DurationCalcMin = nullableIntFromNull(calcMin)
	s.DurationOverrideMin = nullableIntFromNull(overrideMin)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}
