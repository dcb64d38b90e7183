package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/healthmate/internal/models"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewWithDB(db), mock
}

var (
	userCols   = []string{"id", "firstname", "lastname", "email", "password_hash", "created_at"}
	reportCols = []string{"id", "user_id", "filename", "file_url", "storage_id", "mime_type", "title",
		"date_seen", "summary", "explanation_en", "explanation_ro", "suggested_questions", "created_at"}
	vitalsCols = []string{"id", "user_id", "bp", "sugar", "weight", "note", "date", "created_at"}
)

func TestStorage_CreateUser(t *testing.T) {
	user := models.User{
		ID:           "u1",
		FirstName:    "Ann",
		LastName:     "Lee",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "duplicate email", execErr: &pgconn.PgError{Code: "23505"}, wantErr: ErrEmailExists},
		{name: "db error", execErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStorage(t)
			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
				WithArgs(user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, sqlmock.AnyArg())
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := s.CreateUser(context.Background(), user)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.execErr != nil:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrEmailExists)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorage_GetUserByEmail(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("ann@x.com").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Ann", "Lee", "ann@x.com", "hash", created))

		u, err := s.GetUserByEmail(context.Background(), "ann@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.Equal(t, created, u.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("nobody@x.com").
			WillReturnError(sql.ErrNoRows)

		u, err := s.GetUserByEmail(context.Background(), "nobody@x.com")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_GetUserByID(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "Ann", "Lee", "ann@x.com", "hash", time.Now()))

	u, err := s.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", u.Email)
}

func TestStorage_CreateReport(t *testing.T) {
	s, mock := newMockStorage(t)
	r := models.Report{ID: "r1", UserID: "u1", Filename: "report.pdf", FileURL: "/report/uploads/1-report.pdf"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs("r1", "u1", "report.pdf", "/report/uploads/1-report.pdf", "", "", "", "", "", "", "",
			[]byte("[]"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateReport(context.Background(), r))
}

func TestStorage_ListReports(t *testing.T) {
	s, mock := newMockStorage(t)
	newer := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(reportCols).
			AddRow("r2", "u1", "b.pdf", "/b", "", "application/pdf", "B", "", "sb", "", "", []byte(`["q1","q2"]`), newer).
			AddRow("r1", "u1", "a.pdf", "/a", "", "application/pdf", "A", "", "sa", "", "", []byte(`[]`), older))

	got, err := s.ListReports(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
	assert.Equal(t, []string{"q1", "q2"}, got[0].SuggestedQuestions)
	assert.Equal(t, []string{}, got[1].SuggestedQuestions)
}

func TestStorage_ListReports_Empty(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reports")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(reportCols))

	got, err := s.ListReports(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStorage_GetReport_NotOwned(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs("r1", "intruder").
		WillReturnError(sql.ErrNoRows)

	r, err := s.GetReport(context.Background(), "intruder", "r1")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_ReportFileExists(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("u1", "/report/uploads/1-a.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := s.ReportFileExists(context.Background(), "u1", "/report/uploads/1-a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorage_DeleteReport(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "nothing to delete", affected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStorage(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reports")).
				WithArgs("r1", "u1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := s.DeleteReport(context.Background(), "u1", "r1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorage_Vitals(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		s, mock := newMockStorage(t)
		v := models.Vitals{ID: "v1", UserID: "u1", BP: "120/80", Date: date, CreatedAt: date}
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vitals")).
			WithArgs("v1", "u1", "120/80", "", "", "", date, date).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.CreateVitals(context.Background(), v))
	})

	t.Run("list", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM vitals")).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(vitalsCols).AddRow("v1", "u1", "120/80", "", "70", "ok", date, date))

		got, err := s.ListVitals(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "70", got[0].Weight)
	})

	t.Run("delete foreign", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vitals")).
			WithArgs("v1", "intruder").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeleteVitals(context.Background(), "intruder", "v1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
