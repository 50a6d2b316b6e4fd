package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	"github.com/vendora-platform/backend/services/payment-service/models"
	"github.com/vendora-platform/backend/services/payment-service/repository"
	"github.com/vendora-platform/backend/services/payment-service/services"
)

type PaymentController struct {
	Gateway  services.PaymentGateway
	Repo     repository.PaymentRepository
	SNS      aws_pkg.SNSPublisher
	TopicArn string
	Currency string
	Logger   *zap.Logger
}

// CreatePaymentIntent handles POST /create-payment-intent. The amount
// arrives in major currency units and is converted to minor units by
// rounding before the provider is contacted.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Amount *float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.respondError(c, http.StatusBadRequest, "amount must be a number", err)
		return
	}
	if req.Amount == nil || math.IsNaN(*req.Amount) || *req.Amount <= 0 {
		pc.respondError(c, http.StatusBadRequest, "amount must be a positive number", nil)
		return
	}

	amountMinor := int64(math.Round(*req.Amount * 100))

	intent, err := pc.Gateway.CreateIntent(c.Request.Context(), amountMinor, pc.Currency)
	if err != nil {
		if errors.Is(err, services.ErrTargetAccountRequired) {
			pc.respondError(c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		pc.respondError(c, http.StatusInternalServerError, "failed to create payment intent", err)
		return
	}

	payment := &models.Payment{
		OwnerID:         ownerID(c),
		Amount:          amountMinor,
		Currency:        pc.Currency,
		Status:          models.PaymentStatusPending,
		StripePaymentID: intent.ID,
	}
	if err := pc.Repo.Create(c.Request.Context(), payment); err != nil {
		// The provider-side intent exists; losing the local record is
		// recoverable via webhook, so log and keep serving the client.
		pc.Logger.Error("failed to persist payment record",
			zap.String("stripe_payment_id", intent.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// Health handles GET /health.
func (pc *PaymentController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"service":        "payment-service",
		"org_scoped_key": pc.Gateway.OrgScoped(),
	})
}

// AccountInfo handles GET /account-info.
func (pc *PaymentController) AccountInfo(c *gin.Context) {
	info, err := pc.Gateway.GetAccountInfo(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrTargetAccountRequired) {
			pc.respondError(c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		pc.respondError(c, http.StatusBadGateway, "failed to retrieve account info", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// respondError writes the error envelope used across the payment API:
// the message, provider diagnostic detail when present, and a timestamp
// for log correlation.
func (pc *PaymentController) respondError(c *gin.Context, status int, msg string, err error) {
	body := gin.H{
		"error":     msg,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		pc.Logger.Warn(msg, zap.Error(err))
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			body["detail"] = stripeErr.Msg
		} else {
			body["detail"] = err.Error()
		}
	}
	c.JSON(status, body)
}

// ownerID resolves the requesting user, tolerating anonymous checkouts.
func ownerID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return "user:" + userID
	}
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return "guest:" + sessionID
	}
	return ""
}
