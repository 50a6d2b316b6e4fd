package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/account"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

// ErrTargetAccountRequired is returned when the configured secret key is
// organization-scoped but no target account is set. Failing closed here
// prevents charges from landing on the wrong account in a multi-tenant
// Stripe setup.
var ErrTargetAccountRequired = errors.New(
	"organization-scoped API key requires STRIPE_ACCOUNT_ID to be configured")

// Intent is the subset of a created payment intent the platform needs.
type Intent struct {
	ID           string
	ClientSecret string
}

// AccountInfo is returned by the account introspection endpoint.
type AccountInfo struct {
	AccountID      string `json:"account_id"`
	ChargesEnabled bool   `json:"charges_enabled"`
	OrgScopedKey   bool   `json:"org_scoped_key"`
	TargetAccount  string `json:"target_account,omitempty"`
}

// PaymentGateway abstracts the payment provider; mocked in controller
// tests so validation paths can assert zero provider calls.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
	GetAccountInfo(ctx context.Context) (*AccountInfo, error)
	ParseWebhook(r *http.Request) (stripe.Event, error)
	OrgScoped() bool
}

// StripeGateway implements PaymentGateway with the Stripe SDK.
type StripeGateway struct {
	secretKey     string
	targetAccount string
	webhookSecret string
}

func NewStripeGateway(secretKey, targetAccount, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		secretKey:     secretKey,
		targetAccount: targetAccount,
		webhookSecret: webhookSecret,
	}
}

// IsOrganizationKey reports whether key is an organization-scoped Stripe
// credential, which must be paired with a target account to route charges.
func IsOrganizationKey(key string) bool {
	return strings.HasPrefix(key, "sk_org_") || strings.HasPrefix(key, "rk_org_")
}

func (g *StripeGateway) OrgScoped() bool {
	return IsOrganizationKey(g.secretKey)
}

// CreateIntent creates a provider-side payment intent. With an org-scoped
// key the request is issued on behalf of the configured target account;
// without one it fails before any provider call is made.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	if g.OrgScoped() {
		if g.targetAccount == "" {
			return nil, ErrTargetAccountRequired
		}
		params.SetStripeAccount(g.targetAccount)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// GetAccountInfo retrieves the provider account the key resolves to.
func (g *StripeGateway) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	if g.OrgScoped() && g.targetAccount == "" {
		return nil, ErrTargetAccountRequired
	}

	var acct *stripe.Account
	var err error
	if g.OrgScoped() {
		params := &stripe.AccountParams{}
		params.Context = ctx
		acct, err = account.GetByID(g.targetAccount, params)
	} else {
		acct, err = account.Get()
	}
	if err != nil {
		return nil, err
	}
	return &AccountInfo{
		AccountID:      acct.ID,
		ChargesEnabled: acct.ChargesEnabled,
		OrgScopedKey:   g.OrgScoped(),
		TargetAccount:  g.targetAccount,
	}, nil
}

// ParseWebhook verifies the Stripe signature and decodes the event.
func (g *StripeGateway) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
}
