package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOrganizationKey(t *testing.T) {
	assert.True(t, IsOrganizationKey("sk_org_abc123"))
	assert.True(t, IsOrganizationKey("rk_org_abc123"))
	assert.False(t, IsOrganizationKey("sk_test_abc123"))
	assert.False(t, IsOrganizationKey("sk_live_abc123"))
	assert.False(t, IsOrganizationKey(""))
}

func TestCreateIntent_OrgKeyWithoutTargetAccountFailsClosed(t *testing.T) {
	gw := NewStripeGateway("sk_org_abc123", "", "")

	// Must fail before any provider call: no network in this test.
	intent, err := gw.CreateIntent(context.Background(), 1000, "cad")

	assert.Nil(t, intent)
	assert.ErrorIs(t, err, ErrTargetAccountRequired)
}

func TestGetAccountInfo_OrgKeyWithoutTargetAccountFailsClosed(t *testing.T) {
	gw := NewStripeGateway("rk_org_abc123", "", "")

	info, err := gw.GetAccountInfo(context.Background())

	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrTargetAccountRequired)
}
