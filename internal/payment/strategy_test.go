package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-app/internal/domain/orders"
)

type stubStrategy struct {
	name string
}

func (s *stubStrategy) CreateCheckout(ctx context.Context, order *orders.Order, successURL, cancelURL string) (*CheckoutSession, error) {
	return nil, ErrInternal("stub")
}

func (s *stubStrategy) VerifyWebhook(payload []byte, signatureHeader string) (*Event, error) {
	return nil, ErrInternal("stub")
}

func (s *stubStrategy) ProviderName() string { return s.name }

func (s *stubStrategy) SupportsSubscriptions() bool { return true }

func TestSelectorRegisterAndGet(t *testing.T) {
	sel := NewSelector("stripe")
	assert.Empty(t, sel.Providers())

	_, ok := sel.Default()
	assert.False(t, ok)

	stripe := &stubStrategy{name: "stripe"}
	paypal := &stubStrategy{name: "paypal"}
	sel.Register(stripe)
	sel.Register(paypal)

	got, ok := sel.Get("paypal")
	require.True(t, ok)
	assert.Same(t, paypal, got.(*stubStrategy))

	assert.True(t, sel.Has("stripe"))
	assert.False(t, sel.Has("square"))
	assert.Len(t, sel.Providers(), 2)
}

func TestSelectorGetOrDefault(t *testing.T) {
	sel := NewSelector("stripe")
	stripe := &stubStrategy{name: "stripe"}
	sel.Register(stripe)

	// Empty name and unknown name both resolve to the default.
	got, ok := sel.GetOrDefault("")
	require.True(t, ok)
	assert.Same(t, stripe, got.(*stubStrategy))

	got, ok = sel.GetOrDefault("square")
	require.True(t, ok)
	assert.Same(t, stripe, got.(*stubStrategy))
}

func TestSelectorLastRegistrationWins(t *testing.T) {
	sel := NewSelector("stripe")
	first := &stubStrategy{name: "stripe"}
	second := &stubStrategy{name: "stripe"}
	sel.Register(first)
	sel.Register(second)

	got, ok := sel.Get("stripe")
	require.True(t, ok)
	assert.Same(t, second, got.(*stubStrategy))
	assert.Len(t, sel.Providers(), 1)
}

func TestCheckoutSessionIsActive(t *testing.T) {
	s := &CheckoutSession{Status: StatusOpen}
	assert.True(t, s.IsActive())

	future := time.Now().Add(time.Hour)
	s.ExpiresAt = &future
	assert.True(t, s.IsActive())

	past := time.Now().Add(-time.Hour)
	s.ExpiresAt = &past
	assert.False(t, s.IsActive())

	s.ExpiresAt = &future
	s.Status = StatusComplete
	assert.False(t, s.IsActive())
}

func TestCheckoutURLs(t *testing.T) {
	urls := NewCheckoutURLs("https://shop.example")
	assert.Equal(t, "https://shop.example/checkout/success", urls.SuccessURL())
	assert.Equal(t, "https://shop.example/checkout/cancel", urls.CancelURL())
}
