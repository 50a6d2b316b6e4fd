package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/payment-service/controllers"
	"github.com/vendora-platform/backend/services/payment-service/models"
	"github.com/vendora-platform/backend/services/payment-service/repository"
	"github.com/vendora-platform/backend/services/payment-service/routes"
	"github.com/vendora-platform/backend/services/payment-service/services"
)

// ---- mock gateway ----

type mockGateway struct {
	intent       *services.Intent
	intentErr    error
	account      *services.AccountInfo
	accountErr   error
	orgScoped    bool
	createCalls  int
	gotAmount    int64
	gotCurrency  string
	webhookEvent stripe.Event
	webhookErr   error
}

func (m *mockGateway) CreateIntent(_ context.Context, amountMinor int64, currency string) (*services.Intent, error) {
	m.createCalls++
	m.gotAmount = amountMinor
	m.gotCurrency = currency
	return m.intent, m.intentErr
}

func (m *mockGateway) GetAccountInfo(_ context.Context) (*services.AccountInfo, error) {
	return m.account, m.accountErr
}

func (m *mockGateway) ParseWebhook(_ *http.Request) (stripe.Event, error) {
	return m.webhookEvent, m.webhookErr
}

func (m *mockGateway) OrgScoped() bool { return m.orgScoped }

// ---- mock repository ----

type mockPaymentRepo struct {
	created   []*models.Payment
	found     *models.Payment
	findErr   error
	updates   map[string]interface{}
	updateErr error
}

var _ repository.PaymentRepository = (*mockPaymentRepo)(nil)

func (m *mockPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	m.created = append(m.created, p)
	return nil
}

func (m *mockPaymentRepo) FindByStripeID(_ context.Context, _ string) (*models.Payment, error) {
	return m.found, m.findErr
}

func (m *mockPaymentRepo) Updates(_ context.Context, _ *models.Payment, updates map[string]interface{}) error {
	m.updates = updates
	return m.updateErr
}

// ---- helpers ----

func setupRouter(gw *mockGateway, repo *mockPaymentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := &controllers.PaymentController{
		Gateway:  gw,
		Repo:     repo,
		Currency: "cad",
		Logger:   zap.NewNop(),
	}
	routes.RegisterPaymentRoutes(r, pc)
	return r
}

func postIntent(r *gin.Engine, rawBody string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewReader([]byte(rawBody)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestCreatePaymentIntent_Success(t *testing.T) {
	gw := &mockGateway{intent: &services.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	repo := &mockPaymentRepo{}
	r := setupRouter(gw, repo)

	w := postIntent(r, `{"amount": 25.50}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pi_1_secret", resp["clientSecret"])
	assert.Equal(t, int64(2550), gw.gotAmount)
	assert.Equal(t, "cad", gw.gotCurrency)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, models.PaymentStatusPending, repo.created[0].Status)
}

func TestCreatePaymentIntent_RoundsToMinorUnits(t *testing.T) {
	gw := &mockGateway{intent: &services.Intent{ID: "pi_1", ClientSecret: "s"}}
	r := setupRouter(gw, &mockPaymentRepo{})

	w := postIntent(r, `{"amount": 19.999}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2000), gw.gotAmount)
}

func TestCreatePaymentIntent_RejectsNonPositiveAmounts(t *testing.T) {
	for _, body := range []string{
		`{"amount": 0}`,
		`{"amount": -5}`,
		`{}`,
	} {
		gw := &mockGateway{}
		r := setupRouter(gw, &mockPaymentRepo{})

		w := postIntent(r, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Equal(t, 0, gw.createCalls, "no provider call for body: %s", body)
	}
}

func TestCreatePaymentIntent_RejectsNonNumericAmount(t *testing.T) {
	gw := &mockGateway{}
	r := setupRouter(gw, &mockPaymentRepo{})

	w := postIntent(r, `{"amount": "twenty"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gw.createCalls)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestCreatePaymentIntent_OrgKeyWithoutTargetAccount(t *testing.T) {
	gw := &mockGateway{intentErr: services.ErrTargetAccountRequired, orgScoped: true}
	r := setupRouter(gw, &mockPaymentRepo{})

	w := postIntent(r, `{"amount": 10}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "organization-scoped")
}

func TestCreatePaymentIntent_ProviderErrorSurfacesDetail(t *testing.T) {
	gw := &mockGateway{intentErr: &stripe.Error{Msg: "Your card was declined."}}
	r := setupRouter(gw, &mockPaymentRepo{})

	w := postIntent(r, `{"amount": 10}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Your card was declined.", resp["detail"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestHealth(t *testing.T) {
	r := setupRouter(&mockGateway{orgScoped: true}, &mockPaymentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["org_scoped_key"])
}

func TestAccountInfo_Success(t *testing.T) {
	gw := &mockGateway{account: &services.AccountInfo{AccountID: "acct_1", ChargesEnabled: true}}
	r := setupRouter(gw, &mockPaymentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/account-info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var info services.AccountInfo
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "acct_1", info.AccountID)
	assert.True(t, info.ChargesEnabled)
}

func TestAccountInfo_Misconfigured(t *testing.T) {
	gw := &mockGateway{accountErr: services.ErrTargetAccountRequired}
	r := setupRouter(gw, &mockPaymentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/account-info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
