package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/payment-service/models"
)

// StripeWebhook handles POST /webhook. Terminal statuses are written at
// most once; replayed events for an already-final payment are ignored.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	event, err := pc.Gateway.ParseWebhook(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		pc.applyPaymentStatus(c.Request.Context(), event, models.PaymentStatusSucceeded)
	case "payment_intent.payment_failed":
		pc.applyPaymentStatus(c.Request.Context(), event, models.PaymentStatusFailed)
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (pc *PaymentController) applyPaymentStatus(ctx context.Context, event stripe.Event, status string) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		pc.Logger.Warn("failed to decode payment intent from webhook", zap.Error(err))
		return
	}

	payment, err := pc.Repo.FindByStripeID(ctx, pi.ID)
	if err != nil {
		pc.Logger.Warn("webhook for unknown payment intent",
			zap.String("stripe_payment_id", pi.ID), zap.Error(err))
		return
	}
	if payment.Terminal() {
		return
	}

	now := time.Now().UTC()
	payload := string(event.Data.Raw)
	updates := map[string]interface{}{
		"status":               status,
		"stripe_event_payload": payload,
		"updated_at":           now,
	}
	if status == models.PaymentStatusSucceeded {
		updates["succeeded_at"] = now
	} else {
		updates["failed_at"] = now
	}
	if err := pc.Repo.Updates(ctx, payment, updates); err != nil {
		pc.Logger.Error("failed to update payment status",
			zap.String("stripe_payment_id", pi.ID), zap.Error(err))
		return
	}

	pc.publishPaymentEvent(ctx, models.PaymentEvent{
		Type:      "payment_" + status,
		PaymentID: payment.ID.String(),
		OwnerID:   payment.OwnerID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Timestamp: now,
	})
}

// publishPaymentEvent publishes a terminal payment event to SNS.
// Publish failures are logged, never surfaced to Stripe.
func (pc *PaymentController) publishPaymentEvent(ctx context.Context, event models.PaymentEvent) {
	if pc.SNS == nil || pc.TopicArn == "" {
		return
	}
	payload, _ := json.Marshal(event)
	if err := pc.SNS.Publish(ctx, pc.TopicArn, payload); err != nil {
		pc.Logger.Error("failed to publish payment event",
			zap.String("event_type", event.Type), zap.Error(err))
		return
	}
	pc.Logger.Info("payment event published",
		zap.String("event_type", event.Type),
		zap.String("payment_id", event.PaymentID))
}
