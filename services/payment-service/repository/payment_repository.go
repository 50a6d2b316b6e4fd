package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vendora-platform/backend/services/payment-service/models"
)

// PaymentRepository defines data-access operations for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByStripeID(ctx context.Context, stripeID string) (*models.Payment, error)
	Updates(ctx context.Context, payment *models.Payment, updates map[string]interface{}) error
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *GormPaymentRepository) FindByStripeID(ctx context.Context, stripeID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("stripe_payment_id = ?", stripeID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPaymentRepository) Updates(ctx context.Context, payment *models.Payment, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(payment).Updates(updates).Error
}
