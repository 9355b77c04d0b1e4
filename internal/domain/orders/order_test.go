package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-app/internal/domain/catalog"
	"checkout-app/internal/domain/money"
)

func oneTimeProduct(id string, cents int64) *catalog.Product {
	return &catalog.Product{
		ID:              id,
		Name:            id,
		Price:           money.PriceFromSmallestUnit(cents, money.USD),
		BillingInterval: catalog.IntervalOneTime,
		Active:          true,
	}
}

func subscriptionProduct(id string, cents int64, interval catalog.BillingInterval) *catalog.Product {
	return &catalog.Product{
		ID:              id,
		Name:            id,
		Price:           money.PriceFromSmallestUnit(cents, money.USD),
		BillingInterval: interval,
		Active:          true,
	}
}

func TestNewGeneratesIDs(t *testing.T) {
	a := New(money.USD)
	b := New(money.USD)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.IdempotencyKey)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.IdempotencyKey, b.IdempotencyKey)
	assert.Equal(t, ModePayment, a.Mode)
	assert.True(t, a.IsEmpty())
}

func TestLineItemTotal(t *testing.T) {
	item := LineItemFromProduct(oneTimeProduct("p", 1000), 3)
	assert.Equal(t, int64(3000), item.Total().Amount)
	assert.Equal(t, money.USD, item.Total().Currency)
}

func TestOrderTotalAndItemCount(t *testing.T) {
	o := New(money.USD)
	o.AddProduct(oneTimeProduct("p1", 1000), 2) // $20
	o.AddProduct(oneTimeProduct("p2", 2500), 1) // $25

	assert.Equal(t, int64(4500), o.Total().Amount)
	assert.Equal(t, uint32(3), o.ItemCount())
	assert.False(t, o.IsEmpty())
}

func TestSubscriptionModeFlipIsOneDirectional(t *testing.T) {
	o := New(money.USD)
	require.Equal(t, ModePayment, o.Mode)

	o.AddProduct(subscriptionProduct("sub", 2900, catalog.IntervalMonthly), 1)
	assert.Equal(t, ModeSubscription, o.Mode)

	// A later one-time item must not revert the mode.
	o.AddProduct(oneTimeProduct("extra", 500), 1)
	assert.Equal(t, ModeSubscription, o.Mode)
}

func TestLineItemSnapshotsProduct(t *testing.T) {
	p := oneTimeProduct("p", 1000)
	p.Description = "before"
	p.ImageURL = "https://img.example/p.png"

	item := LineItemFromProduct(p, 1)
	p.Description = "after"

	assert.Equal(t, "before", item.Description)
	assert.Equal(t, "https://img.example/p.png", item.ImageURL)
}
