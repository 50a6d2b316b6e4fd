package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	"github.com/vendora-platform/backend/services/vendor-service/models"
	"github.com/vendora-platform/backend/services/vendor-service/repository"
)

// ServiceError carries an HTTP status alongside a client-safe message.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// CreateRequest is the vendor-facing payload for a new withdrawal.
type CreateRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	BankName      string  `json:"bank_name" binding:"required"`
	AccountNumber string  `json:"account_number" binding:"required"`
	AccountHolder string  `json:"account_holder" binding:"required"`
	RoutingNumber string  `json:"routing_number" binding:"required"`
}

// WithdrawalService owns the withdrawal lifecycle. All state movement
// goes through the transition methods so the single-terminal-outcome
// rule cannot be bypassed.
type WithdrawalService interface {
	Create(ctx context.Context, vendorID string, req CreateRequest) (*models.Withdrawal, *ServiceError)
	ListForVendor(ctx context.Context, vendorID string, limit, offset int) ([]models.Withdrawal, *ServiceError)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, *ServiceError)
	Approve(ctx context.Context, id uuid.UUID, actor string) (*models.Withdrawal, *ServiceError)
	Reject(ctx context.Context, id uuid.UUID, actor, reason string) (*models.Withdrawal, *ServiceError)
	Complete(ctx context.Context, id uuid.UUID, actor string) (*models.Withdrawal, *ServiceError)
}

type withdrawalService struct {
	repo     repository.WithdrawalRepository
	sns      aws_pkg.SNSPublisher
	topicArn string
	currency string
	logger   *zap.Logger
}

func NewWithdrawalService(repo repository.WithdrawalRepository, sns aws_pkg.SNSPublisher, topicArn, currency string, logger *zap.Logger) WithdrawalService {
	return &withdrawalService{
		repo:     repo,
		sns:      sns,
		topicArn: topicArn,
		currency: currency,
		logger:   logger,
	}
}

func (s *withdrawalService) Create(ctx context.Context, vendorID string, req CreateRequest) (*models.Withdrawal, *ServiceError) {
	amountMinor := int64(math.Round(req.Amount * 100))
	if amountMinor <= 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "amount must be a positive number"}
	}

	w := &models.Withdrawal{
		VendorID:      vendorID,
		Amount:        amountMinor,
		Currency:      s.currency,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		RoutingNumber: req.RoutingNumber,
		Status:        models.WithdrawalStatusPending,
		RequestedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error("failed to create withdrawal request", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to create withdrawal request"}
	}

	s.publishEvent(ctx, "withdrawal_requested", w, vendorID)
	return w, nil
}

func (s *withdrawalService) ListForVendor(ctx context.Context, vendorID string, limit, offset int) ([]models.Withdrawal, *ServiceError) {
	ws, err := s.repo.FindByVendorID(ctx, vendorID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list withdrawals", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to list withdrawals"}
	}
	return ws, nil
}

func (s *withdrawalService) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Withdrawal, *ServiceError) {
	if status != "" && !validStatus(status) {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("unknown status %q", status)}
	}
	ws, err := s.repo.FindByStatus(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("failed to list withdrawals", zap.String("status", status), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to list withdrawals"}
	}
	return ws, nil
}

// Approve moves a pending request to approved.
func (s *withdrawalService) Approve(ctx context.Context, id uuid.UUID, actor string) (*models.Withdrawal, *ServiceError) {
	w, svcErr := s.load(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if w.Status != models.WithdrawalStatusPending {
		return nil, transitionConflict(w.Status, models.WithdrawalStatusApproved)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      models.WithdrawalStatusApproved,
		"reviewed_at": now,
		"reviewed_by": actor,
		"updated_at":  now,
	}
	if err := s.repo.Updates(ctx, w, updates); err != nil {
		s.logger.Error("failed to approve withdrawal", zap.String("withdrawal_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to approve withdrawal"}
	}
	w.Status = models.WithdrawalStatusApproved
	w.ReviewedAt = &now
	w.ReviewedBy = actor

	s.publishEvent(ctx, "withdrawal_approved", w, actor)
	return w, nil
}

// Reject moves a pending request to rejected. A reason is mandatory so
// the vendor always learns why the payout was declined.
func (s *withdrawalService) Reject(ctx context.Context, id uuid.UUID, actor, reason string) (*models.Withdrawal, *ServiceError) {
	if strings.TrimSpace(reason) == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "a rejection reason is required"}
	}

	w, svcErr := s.load(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if w.Status != models.WithdrawalStatusPending {
		return nil, transitionConflict(w.Status, models.WithdrawalStatusRejected)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":        models.WithdrawalStatusRejected,
		"reject_reason": reason,
		"reviewed_at":   now,
		"reviewed_by":   actor,
		"updated_at":    now,
	}
	if err := s.repo.Updates(ctx, w, updates); err != nil {
		s.logger.Error("failed to reject withdrawal", zap.String("withdrawal_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to reject withdrawal"}
	}
	w.Status = models.WithdrawalStatusRejected
	w.RejectReason = reason
	w.ReviewedAt = &now
	w.ReviewedBy = actor

	s.publishEvent(ctx, "withdrawal_rejected", w, actor)
	return w, nil
}

// Complete moves an approved request to completed, the only valid
// second terminal step. A rejected request can never be completed.
func (s *withdrawalService) Complete(ctx context.Context, id uuid.UUID, actor string) (*models.Withdrawal, *ServiceError) {
	w, svcErr := s.load(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if w.Status != models.WithdrawalStatusApproved {
		return nil, transitionConflict(w.Status, models.WithdrawalStatusCompleted)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       models.WithdrawalStatusCompleted,
		"completed_at": now,
		"completed_by": actor,
		"updated_at":   now,
	}
	if err := s.repo.Updates(ctx, w, updates); err != nil {
		s.logger.Error("failed to complete withdrawal", zap.String("withdrawal_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to complete withdrawal"}
	}
	w.Status = models.WithdrawalStatusCompleted
	w.CompletedAt = &now
	w.CompletedBy = actor

	s.publishEvent(ctx, "withdrawal_completed", w, actor)
	return w, nil
}

func (s *withdrawalService) load(ctx context.Context, id uuid.UUID) (*models.Withdrawal, *ServiceError) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "withdrawal not found"}
		}
		s.logger.Error("failed to load withdrawal", zap.String("withdrawal_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "failed to load withdrawal"}
	}
	return w, nil
}

func transitionConflict(from, to string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("cannot move a %s withdrawal to %s", from, to),
	}
}

func validStatus(s string) bool {
	switch s {
	case models.WithdrawalStatusPending, models.WithdrawalStatusApproved,
		models.WithdrawalStatusRejected, models.WithdrawalStatusCompleted:
		return true
	}
	return false
}

// publishEvent reports a lifecycle transition to SNS. Failures are
// logged, never surfaced to the admin or vendor.
func (s *withdrawalService) publishEvent(ctx context.Context, eventType string, w *models.Withdrawal, actor string) {
	if s.sns == nil || s.topicArn == "" {
		return
	}
	payload, _ := json.Marshal(models.WithdrawalEvent{
		Type:         eventType,
		WithdrawalID: w.ID.String(),
		VendorID:     w.VendorID,
		Amount:       w.Amount,
		Currency:     w.Currency,
		Actor:        actor,
		Timestamp:    time.Now().UTC(),
	})
	if err := s.sns.Publish(ctx, s.topicArn, payload); err != nil {
		s.logger.Error("failed to publish withdrawal event",
			zap.String("event_type", eventType), zap.Error(err))
		return
	}
	s.logger.Info("withdrawal event published",
		zap.String("event_type", eventType),
		zap.String("withdrawal_id", w.ID.String()))
}
