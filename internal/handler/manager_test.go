package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stream-shift-scheduler/internal/config"
	"github.com/iliyamo/stream-shift-scheduler/internal/repository"
)

const selectUserSQL = "SELECT id,name,role,`rank`,password_hash,revenue,notify_phone,availability_submitted,created_at,updated_at FROM users WHERE id=? LIMIT 1"

func newManagerHandler(t *testing.T) (*ManagerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewManagerHandler(
		config.Config{BcryptCost: 4},
		repository.NewUserRepo(db),
		repository.NewShiftRepo(db),
	), mock
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func storedUserRow() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "role", "rank", "password_hash", "revenue",
		"notify_phone", "availability_submitted", "created_at", "updated_at",
	}).AddRow("staff-9", "An", "STAFF", nil, "stored-hash", nil, nil, false, now, now)
}

func TestUpsertUser_NewUserWithoutPasswordIsRejected(t *testing.T) {
	h, mock := newManagerHandler(t)

	// No such user yet: the lookup comes back empty and the handler must
	// refuse to create an account that could never log in.
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("staff-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := newJSONContext(t, http.MethodPut, "/v1/manager/users",
		`{"id":"staff-9","name":"An","role":"STAFF"}`)

	require.NoError(t, h.UpsertUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUser_ExistingUserKeepsStoredPassword(t *testing.T) {
	h, mock := newManagerHandler(t)

	// Existing user: empty password means "keep the stored hash", so the
	// update goes through with an empty password_hash argument.
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("staff-9").
		WillReturnRows(storedUserRow())
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("staff-9").
		WillReturnRows(storedUserRow())

	c, rec := newJSONContext(t, http.MethodPut, "/v1/manager/users",
		`{"id":"staff-9","name":"An","role":"STAFF"}`)

	require.NoError(t, h.UpsertUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
