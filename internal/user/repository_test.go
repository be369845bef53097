package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestFindByIDAndMirror(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	// FindByID
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, email, full_name, plan_name, plan_expires_at, updated_at FROM profiles WHERE user_id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "full_name", "plan_name", "plan_expires_at", "updated_at"}).
			AddRow(1, "a@example.com", "Alice", nil, nil, now))

	p, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Alice", p.DisplayName())
	require.Nil(t, p.PlanName)

	// UpdatePlanMirror
	expires := now.Add(30 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET plan_name = $2, plan_expires_at = $3, updated_at = NOW() WHERE user_id = $1")).
		WithArgs(1, "Basic", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePlanMirror(ctx, 1, "Basic", expires))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles")).
		WithArgs(2).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDisplayName_FallsBackToEmail(t *testing.T) {
	p := &Profile{Email: "b@example.com"}
	require.Equal(t, "b@example.com", p.DisplayName())
}
