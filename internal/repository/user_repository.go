package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// UserRepo manages rows in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// `rank` is a reserved word since MySQL 8.0.2 and must stay backquoted.
const userColumns = "id,name,role,`rank`,password_hash,revenue,notify_phone,availability_submitted,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u       model.User
		rank    sql.NullString
		revenue sql.NullInt64
		phone   sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Role, &rank, &u.PasswordHash, &revenue, &phone,
		&u.AvailabilitySubmitted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if rank.Valid {
		r := model.Rank(rank.String)
		u.Rank = &r
	}
	if revenue.Valid {
		v := revenue.Int64
		u.Revenue = &v
	}
	if phone.Valid {
		p := phone.String
		u.NotifyPhone = &p
	}
	return u, nil
}

// List returns all users ordered by name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByID fetches a user by their employee code.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", strings.TrimSpace(id)))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Upsert inserts or fully replaces a user row. The password hash is
// expected to be computed by the caller; an empty hash on update keeps
// the stored one.
func (r *UserRepo) Upsert(ctx context.Context, u model.User) error {
	var rank, phone *string
	if u.Rank != nil {
		s := string(*u.Rank)
		rank = &s
	}
	phone = u.NotifyPhone
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id,name,role,`rank`,password_hash,revenue,notify_phone,availability_submitted) "+
			"VALUES (?,?,?,?,?,?,?,?) "+
			"ON DUPLICATE KEY UPDATE "+
			"name=VALUES(name), role=VALUES(role), `rank`=VALUES(`rank`), "+
			"password_hash=IF(VALUES(password_hash)='', password_hash, VALUES(password_hash)), "+
			"revenue=VALUES(revenue), notify_phone=VALUES(notify_phone), "+
			"availability_submitted=VALUES(availability_submitted)",
		u.ID, u.Name, string(u.Role), rank, u.PasswordHash, u.Revenue, phone, u.AvailabilitySubmitted)
	return err
}

// Delete removes a user row. Missing rows are reported as ErrNotFound.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailabilitySubmitted flips the per-week submission flag for one
// user and returns the updated record so callers can publish a
// notification with the full row.
func (r *UserRepo) SetAvailabilitySubmitted(ctx context.Context, id string, submitted bool) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET availability_submitted=? WHERE id=?", submitted, id)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the flag already had the value;
		// distinguish via a lookup so an existing user is not a 404.
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return model.User{}, lookupErr
		}
	}
	return r.GetByID(ctx, id)
}

// ResetAllAvailabilitySubmitted clears the submission flag for every
// user. This is the explicit week-boundary reset; it is never run
// automatically.
func (r *UserRepo) ResetAllAvailabilitySubmitted(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET availability_submitted=FALSE WHERE availability_submitted=TRUE")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
