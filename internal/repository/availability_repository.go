package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// AvailabilityRepo manages rows in the 'availability' table. The table
// is set-like: a unique key spans the whole (user, week, day, shift)
// tuple and toggling inserts or deletes a row.
type AvailabilityRepo struct{ DB *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{DB: db} }

// ListWeek returns every availability declaration scoped to a week.
func (r *AvailabilityRepo) ListWeek(ctx context.Context, weekID string) ([]model.Availability, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT user_id,week_id,day_index,shift_id FROM availability WHERE week_id=?", weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Availability
	for rows.Next() {
		var a model.Availability
		if err := rows.Scan(&a.UserID, &a.WeekID, &a.DayIndex, &a.ShiftID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Toggle flips one availability tuple: the row is deleted when present
// and inserted when absent. Returns true when the tuple exists after
// the call.
func (r *AvailabilityRepo) Toggle(ctx context.Context, a model.Availability) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM availability
		WHERE user_id=? AND week_id=? AND day_index=? AND shift_id=?`,
		a.UserID, a.WeekID, a.DayIndex, a.ShiftID)
	if err != nil {
		return false, err
	}
	deleted, _ := res.RowsAffected()
	present := false
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO availability (user_id,week_id,day_index,shift_id)
			VALUES (?,?,?,?)`,
			a.UserID, a.WeekID, a.DayIndex, a.ShiftID); err != nil {
			return false, err
		}
		present = true
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return present, nil
}

// ClearWeek drops every declaration for a week.
func (r *AvailabilityRepo) ClearWeek(ctx context.Context, weekID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM availability WHERE week_id=?", weekID)
	return err
}
