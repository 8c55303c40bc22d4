package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-hrms/internal/leave"
)

func newGORMOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)
	return gdb, mock
}

// Queries issued through WithTx must run on the transaction's connection,
// not on the pool the repository was constructed with.
func TestLeaveRepository_WithTxJoinsTransaction(t *testing.T) {
	ctx := context.Background()

	base, poolMock := newGORMOverMock(t)
	repo := leave.NewRepository(base)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectQuery(`SELECT count\(\*\) FROM "leave_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	txMock.ExpectCommit()

	tx, err := txDB.BeginTx(ctx, nil)
	assert.NoError(t, err)

	overlap, err := repo.WithTx(tx).HasOverlappingPeriod(
		ctx,
		uuid.NewString(),
		uuid.NewString(),
		time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
	)
	assert.NoError(t, err)
	assert.True(t, overlap)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestLeaveRepository_WithTxNilFallsBackToPool(t *testing.T) {
	ctx := context.Background()

	base, poolMock := newGORMOverMock(t)
	repo := leave.NewRepository(base)

	poolMock.ExpectQuery(`SELECT count\(\*\) FROM "leave_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	overlap, err := repo.WithTx(nil).HasOverlappingPeriod(
		ctx,
		uuid.NewString(),
		uuid.NewString(),
		time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
	)
	assert.NoError(t, err)
	assert.False(t, overlap)
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
