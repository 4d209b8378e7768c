package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// ScheduleRepo manages rows in the 'schedule_items' table. Streamer
// assignments are stored as a JSON array in one column, mirroring the
// wire shape the frontend consumes. Cell lookups always go through the
// (week, day, shift) triple because bulk-generated rows carry an id
// suffix that interactive rows do not.
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

const scheduleColumns = "id,week_id,day_index,shift_id,streamer_assignments,ops_user_id,note,is_finalized"

func scanScheduleItem(row interface{ Scan(...any) error }) (model.ScheduleItem, error) {
	var (
		it       model.ScheduleItem
		raw      []byte
		ops      sql.NullString
		note     sql.NullString
	)
	err := row.Scan(&it.ID, &it.WeekID, &it.DayIndex, &it.ShiftID, &raw, &ops, &note, &it.IsFinalized)
	if err != nil {
		return model.ScheduleItem{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &it.StreamerAssignments); err != nil {
			return model.ScheduleItem{}, fmt.Errorf("decode streamer assignments for %s: %w", it.ID, err)
		}
	}
	if it.StreamerAssignments == nil {
		it.StreamerAssignments = []model.StreamerAssignment{}
	}
	if ops.Valid {
		v := ops.String
		it.OpsUserID = &v
	}
	if note.Valid {
		it.Note = note.String
	}
	return it, nil
}

// ListWeek returns the full stored schedule for a week.
func (r *ScheduleRepo) ListWeek(ctx context.Context, weekID string) ([]model.ScheduleItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedule_items WHERE week_id=? ORDER BY day_index, shift_id", weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleItem
	for rows.Next() {
		it, err := scanScheduleItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetByCell fetches the item occupying one (week, day, shift) cell.
// Returns ErrNotFound when the cell is empty.
func (r *ScheduleRepo) GetByCell(ctx context.Context, weekID string, dayIndex int, shiftID string) (model.ScheduleItem, error) {
	it, err := scanScheduleItem(r.DB.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedule_items WHERE week_id=? AND day_index=? AND shift_id=? LIMIT 1",
		weekID, dayIndex, shiftID))
	if err == sql.ErrNoRows {
		return model.ScheduleItem{}, ErrNotFound
	}
	return it, err
}

// Upsert writes an item. The unique key over the cell triple means an
// interactive save replaces whatever id currently occupies the cell.
func (r *ScheduleRepo) Upsert(ctx context.Context, it model.ScheduleItem) error {
	raw, err := json.Marshal(it.StreamerAssignments)
	if err != nil {
		return fmt.Errorf("encode streamer assignments for %s: %w", it.ID, err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO schedule_items (id,week_id,day_index,shift_id,streamer_assignments,ops_user_id,note,is_finalized)
		VALUES (?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			id=VALUES(id), streamer_assignments=VALUES(streamer_assignments),
			ops_user_id=VALUES(ops_user_id), note=VALUES(note), is_finalized=VALUES(is_finalized)`,
		it.ID, it.WeekID, it.DayIndex, it.ShiftID, raw, it.OpsUserID, it.Note, it.IsFinalized)
	return err
}

// Delete removes an item by id. Deleting an already-gone row is not an
// error: the empty-slot invariant makes double deletes harmless.
func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM schedule_items WHERE id=?", id)
	return err
}

// ClearWeek wipes the stored schedule for a week. The generation flow
// calls this before inserting a fresh proposal (wholesale replace).
func (r *ScheduleRepo) ClearWeek(ctx context.Context, weekID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM schedule_items WHERE week_id=?", weekID)
	return err
}

// InsertBatch inserts generated items inside one transaction so a
// failed generation never leaves a half-written week behind.
func (r *ScheduleRepo) InsertBatch(ctx context.Context, items []model.ScheduleItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, it := range items {
		raw, err := json.Marshal(it.StreamerAssignments)
		if err != nil {
			return fmt.Errorf("encode streamer assignments for %s: %w", it.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_items (id,week_id,day_index,shift_id,streamer_assignments,ops_user_id,note,is_finalized)
			VALUES (?,?,?,?,?,?,?,?)`,
			it.ID, it.WeekID, it.DayIndex, it.ShiftID, raw, it.OpsUserID, it.Note, it.IsFinalized); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// FinalizeWeek marks every stored item of a week as locked.
func (r *ScheduleRepo) FinalizeWeek(ctx context.Context, weekID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE schedule_items SET is_finalized=TRUE WHERE week_id=?", weekID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
