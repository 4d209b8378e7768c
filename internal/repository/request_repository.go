package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// RequestRepo manages rows in the 'requests' table.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

const requestColumns = "id,user_id,user_name,type,week_id,day_index,shift_id,reason,target_user_id,target_user_name,status,created_at"

func scanRequest(row interface{ Scan(...any) error }) (model.ShiftRequest, error) {
	var (
		req        model.ShiftRequest
		targetID   sql.NullString
		targetName sql.NullString
	)
	err := row.Scan(&req.ID, &req.UserID, &req.UserName, &req.Type, &req.WeekID, &req.DayIndex,
		&req.ShiftID, &req.Reason, &targetID, &targetName, &req.Status, &req.CreatedAt)
	if err != nil {
		return model.ShiftRequest{}, err
	}
	if targetID.Valid {
		v := targetID.String
		req.TargetUserID = &v
	}
	if targetName.Valid {
		v := targetName.String
		req.TargetUserName = &v
	}
	return req, nil
}

// ListWeek returns a week's requests, newest first.
func (r *RequestRepo) ListWeek(ctx context.Context, weekID string) ([]model.ShiftRequest, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE week_id=? ORDER BY created_at DESC", weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShiftRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// GetByID fetches a single request.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (model.ShiftRequest, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.ShiftRequest{}, ErrNotFound
	}
	return req, err
}

// Create inserts a new PENDING request.
func (r *RequestRepo) Create(ctx context.Context, req model.ShiftRequest) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO requests (id,user_id,user_name,type,week_id,day_index,shift_id,reason,target_user_id,target_user_name,status,created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		req.ID, req.UserID, req.UserName, string(req.Type), req.WeekID, req.DayIndex,
		req.ShiftID, req.Reason, req.TargetUserID, req.TargetUserName, string(req.Status), req.CreatedAt)
	return err
}

// Decide moves a PENDING request to APPROVED or REJECTED. PENDING is
// the only state that may transition; a second decision returns
// ErrConflict and a missing id returns ErrNotFound.
func (r *RequestRepo) Decide(ctx context.Context, id string, status model.RequestStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET status=? WHERE id=? AND status=?",
		string(status), id, string(model.StatusPending))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}
