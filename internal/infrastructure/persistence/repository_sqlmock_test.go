//go:build unit
// +build unit

package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_GetByID_MapsMissingRowToNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo, err := NewGormUserRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err = repo.GetByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_WrapsDriverErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo, err := NewGormUserRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset"))

	_, err = repo.GetByID(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "failed to fetch user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail_NormalizesInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo, err := NewGormUserRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "  Ana@Example.com ")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeRefreshToken_NoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo, err := NewGormSessionRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE "refresh_tokens" SET "revoked_at"=\$1 WHERE id = \$2 AND revoked_at IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.RevokeRefreshToken(context.Background(), uuid.NewString(), time.Now())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead_ReturnsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo, err := NewGormNotificationRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE "notifications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	updated, err := repo.MarkAllRead(context.Background(), uuid.NewString(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_JoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	transactor := NewGormTransactor(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return transactor.WithinTransaction(ctx, func(inner context.Context) error {
			calls++
			assert.Same(t, ctx.Value(txKey{}), inner.Value(txKey{}))
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
