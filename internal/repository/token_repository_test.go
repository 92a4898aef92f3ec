package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-sharing-server/config"
	"image-sharing-server/internal/repository"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &config.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

// 1. Добавление токена в черный список
func TestRevokedTokenRepository_Add(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	mock.ExpectExec("INSERT INTO revoked_tokens").
		WithArgs("some-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Add(context.Background(), "some-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Повторное добавление того же токена не ошибка
func TestRevokedTokenRepository_AddIdempotent(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	// ON CONFLICT DO NOTHING: ноль затронутых строк
	mock.ExpectExec("INSERT INTO revoked_tokens").
		WithArgs("same-token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Add(context.Background(), "same-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 3. Проверка членства: токен в списке
func TestRevokedTokenRepository_ContainsTrue(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("revoked-token").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	revoked, err := repo.Contains(context.Background(), "revoked-token")

	assert.NoError(t, err)
	assert.True(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 4. Проверка членства: токена нет
func TestRevokedTokenRepository_ContainsFalse(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("clean-token").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	revoked, err := repo.Contains(context.Background(), "clean-token")

	assert.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 5. Очистка возвращает число удаленных записей
func TestRevokedTokenRepository_Purge(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	mock.ExpectExec("DELETE FROM revoked_tokens").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.Purge(context.Background(), 4*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 6. Ошибка БД при проверке не маскируется под "не отозван"
func TestRevokedTokenRepository_ContainsError(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewRevokedTokenRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("any-token").
		WillReturnError(assert.AnError)

	revoked, err := repo.Contains(context.Background(), "any-token")

	assert.Error(t, err)
	assert.False(t, revoked)
}
