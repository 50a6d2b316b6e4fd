package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vendora-platform/backend/services/vendor-service/models"
	"github.com/vendora-platform/backend/services/vendor-service/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormWithdrawalRepository(gormDB)

	w := &models.Withdrawal{
		ID:          uuid.New(),
		VendorID:    "vendor-1",
		Amount:      15000,
		Currency:    "cad",
		Status:      models.WithdrawalStatusPending,
		RequestedAt: time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "withdrawals"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(w.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), w)
	assert.NoError(t, err)
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormWithdrawalRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "withdrawals"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	w, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, w)
}

func TestFindByStatus_FiltersWhenSet(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormWithdrawalRepository(gormDB)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "vendor_id", "amount", "currency", "status", "requested_at", "created_at", "updated_at"}).
		AddRow(id, "vendor-1", int64(15000), "cad", models.WithdrawalStatusPending, now, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "withdrawals"`)).
		WillReturnRows(rows)

	ws, err := repo.FindByStatus(context.Background(), models.WithdrawalStatusPending, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, ws, 1)
	assert.Equal(t, models.WithdrawalStatusPending, ws[0].Status)
}
