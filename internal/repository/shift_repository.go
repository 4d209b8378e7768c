package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// ShiftRepo manages rows in the 'shifts' table.
type ShiftRepo struct{ DB *sql.DB }

func NewShiftRepo(db *sql.DB) *ShiftRepo { return &ShiftRepo{DB: db} }

// List returns all configured shifts ordered by start time, which is
// the order the schedule grid and the generation engine walk them in.
func (r *ShiftRepo) List(ctx context.Context) ([]model.Shift, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,start_time,end_time,tag FROM shifts ORDER BY start_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Shift
	for rows.Next() {
		var s model.Shift
		if err := rows.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Tag); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Upsert inserts or replaces a shift definition.
func (r *ShiftRepo) Upsert(ctx context.Context, s model.Shift) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO shifts (id,name,start_time,end_time,tag) VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			name=VALUES(name), start_time=VALUES(start_time),
			end_time=VALUES(end_time), tag=VALUES(tag)`,
		s.ID, s.Name, s.StartTime, s.EndTime, s.Tag)
	return err
}

// Delete removes a shift. Schedule items referencing it are left in
// place; the grid simply stops rendering that row, which is why the
// frontend warns the manager before deleting.
func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM shifts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
