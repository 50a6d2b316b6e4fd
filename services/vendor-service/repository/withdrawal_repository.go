package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendora-platform/backend/services/vendor-service/models"
)

// WithdrawalRepository defines data-access operations for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *models.Withdrawal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error)
	FindByVendorID(ctx context.Context, vendorID string, limit, offset int) ([]models.Withdrawal, error)
	FindByStatus(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, error)
	Updates(ctx context.Context, w *models.Withdrawal, updates map[string]interface{}) error
}

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
type GormWithdrawalRepository struct {
	db *gorm.DB
}

func NewGormWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

func (r *GormWithdrawalRepository) Create(ctx context.Context, w *models.Withdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *GormWithdrawalRepository) FindByVendorID(ctx context.Context, vendorID string, limit, offset int) ([]models.Withdrawal, error) {
	var ws []models.Withdrawal
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("requested_at DESC").
		Limit(limit).Offset(offset).
		Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *GormWithdrawalRepository) FindByStatus(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, error) {
	q := r.db.WithContext(ctx).Order("requested_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ws []models.Withdrawal
	if err := q.Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *GormWithdrawalRepository) Updates(ctx context.Context, w *models.Withdrawal, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(w).Updates(updates).Error
}
