package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/payment-service/controllers"
	"github.com/vendora-platform/backend/services/payment-service/models"
	"github.com/vendora-platform/backend/services/payment-service/routes"
)

type mockSNS struct {
	published [][]byte
	err       error
}

func (m *mockSNS) Publish(_ context.Context, _ string, message []byte) error {
	m.published = append(m.published, message)
	return m.err
}

func intentEvent(eventType, intentID string) stripe.Event {
	raw, _ := json.Marshal(map[string]interface{}{"id": intentID})
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func postWebhook(gw *mockGateway, repo *mockPaymentRepo, sns *mockSNS) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := &controllers.PaymentController{
		Gateway:  gw,
		Repo:     repo,
		Currency: "cad",
		Logger:   zap.NewNop(),
	}
	if sns != nil {
		pc.SNS = sns
		pc.TopicArn = "arn:aws:sns:us-east-1:000000000000:payment-events"
	}
	routes.RegisterPaymentRoutes(r, pc)
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	gw := &mockGateway{webhookErr: errors.New("signature verification failed")}
	repo := &mockPaymentRepo{}

	w := postWebhook(gw, repo, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.updates)
}

func TestStripeWebhook_SucceededMarksPayment(t *testing.T) {
	payment := &models.Payment{
		ID:              uuid.New(),
		OwnerID:         "user:u-1",
		Amount:          2550,
		Currency:        "cad",
		Status:          models.PaymentStatusPending,
		StripePaymentID: "pi_1",
	}
	gw := &mockGateway{webhookEvent: intentEvent("payment_intent.succeeded", "pi_1")}
	repo := &mockPaymentRepo{found: payment}

	w := postWebhook(gw, repo, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusSucceeded, repo.updates["status"])
	assert.Contains(t, repo.updates, "succeeded_at")
	assert.NotContains(t, repo.updates, "failed_at")
}

func TestStripeWebhook_FailedMarksPayment(t *testing.T) {
	payment := &models.Payment{
		ID:              uuid.New(),
		Status:          models.PaymentStatusPending,
		StripePaymentID: "pi_2",
	}
	gw := &mockGateway{webhookEvent: intentEvent("payment_intent.payment_failed", "pi_2")}
	repo := &mockPaymentRepo{found: payment}

	postWebhook(gw, repo, nil)

	assert.Equal(t, models.PaymentStatusFailed, repo.updates["status"])
	assert.Contains(t, repo.updates, "failed_at")
}

func TestStripeWebhook_TerminalPaymentIgnoresReplay(t *testing.T) {
	payment := &models.Payment{
		ID:              uuid.New(),
		Status:          models.PaymentStatusSucceeded,
		StripePaymentID: "pi_1",
	}
	gw := &mockGateway{webhookEvent: intentEvent("payment_intent.payment_failed", "pi_1")}
	repo := &mockPaymentRepo{found: payment}

	w := postWebhook(gw, repo, nil)

	// Replays against a final payment are acknowledged but not applied.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.updates)
}

func TestStripeWebhook_PublishesTerminalEvent(t *testing.T) {
	payment := &models.Payment{
		ID:              uuid.New(),
		OwnerID:         "user:u-1",
		Amount:          2550,
		Currency:        "cad",
		Status:          models.PaymentStatusPending,
		StripePaymentID: "pi_1",
	}
	gw := &mockGateway{webhookEvent: intentEvent("payment_intent.succeeded", "pi_1")}
	repo := &mockPaymentRepo{found: payment}
	sns := &mockSNS{}

	postWebhook(gw, repo, sns)

	assert.Len(t, sns.published, 1)
	var event models.PaymentEvent
	assert.NoError(t, json.Unmarshal(sns.published[0], &event))
	assert.Equal(t, "payment_succeeded", event.Type)
	assert.Equal(t, "user:u-1", event.OwnerID)
	assert.Equal(t, int64(2550), event.Amount)
}

func TestStripeWebhook_UnknownEventTypeAcknowledged(t *testing.T) {
	gw := &mockGateway{webhookEvent: intentEvent("charge.refunded", "pi_1")}
	repo := &mockPaymentRepo{}

	w := postWebhook(gw, repo, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.updates)
}
