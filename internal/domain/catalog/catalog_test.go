package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-app/internal/domain/money"
)

const sampleTOML = `
[[products]]
id = "pro-license"
name = "Pro License"
description = "Lifetime pro license"
product_type = "digital"
price = { amount = 2999, currency = "usd" }

[products.metadata]
tier = "pro"

[[products]]
id = "api-monthly"
name = "API Monthly"
product_type = "api_access"
billing_interval = "monthly"
price = { amount = 900, currency = "usd" }

[[products]]
id = "retired"
name = "Retired Product"
active = false
price = { amount = 100, currency = "usd" }
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	p, ok := c.Get("pro-license")
	require.True(t, ok)
	assert.Equal(t, "Pro License", p.Name)
	assert.Equal(t, int64(2999), p.Price.Amount)
	assert.Equal(t, money.USD, p.Price.Currency)
	assert.Equal(t, IntervalOneTime, p.BillingInterval)
	assert.Equal(t, TypeDigital, p.ProductType)
	assert.True(t, p.Active)
	assert.Equal(t, "pro", p.Metadata["tier"])
	assert.False(t, p.IsSubscription())

	sub, ok := c.Get("api-monthly")
	require.True(t, ok)
	assert.True(t, sub.IsSubscription())

	retired, ok := c.Get("retired")
	require.True(t, ok)
	assert.False(t, retired.Active)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte(`[[products]]` + "\n" + `name = "no id"` + "\n" + `price = { amount = 1, currency = "usd" }`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[[products]]` + "\n" + `id = "x"` + "\n" + `price = { amount = 1, currency = "xbt" }`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not toml {{`))
	assert.Error(t, err)
}

func TestActiveProductsKeepsRegistrationOrder(t *testing.T) {
	c, err := Parse([]byte(sampleTOML))
	require.NoError(t, err)

	active := c.ActiveProducts()
	require.Len(t, active, 2)
	assert.Equal(t, "pro-license", active[0].ID)
	assert.Equal(t, "api-monthly", active[1].ID)
}

func TestGetUnknown(t *testing.T) {
	c := New()
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestLoadMissingFileYieldsEmptyCatalog(t *testing.T) {
	c, err := Load("does/not/exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
