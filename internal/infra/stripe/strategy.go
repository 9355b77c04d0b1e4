package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"

	"checkout-app/config"
	"checkout-app/internal/domain/catalog"
	"checkout-app/internal/domain/orders"
	"checkout-app/internal/payment"
)

// metadata keys the checkout handler writes onto orders.
const metadataStatementSuffix = "statement_descriptor_suffix"

// Strategy implements payment.Strategy against the Stripe API. It holds its
// own client; the global stripe.Key is never set.
type Strategy struct {
	client        *client.API
	webhookSecret string

	// now is swappable so webhook tolerance can be tested deterministically.
	now func() time.Time
}

// New builds a Stripe strategy from validated credentials. A non-empty
// APIBaseURL redirects all calls, which is how tests and stripe-mock hook in.
func New(cfg config.StripeConfig) (*Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, payment.ErrConfiguration("stripe: %v", err)
	}

	api := &client.API{}
	var backends *stripe.Backends
	if cfg.APIBaseURL != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(cfg.APIBaseURL),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}
	api.Init(cfg.SecretKey, backends)

	return &Strategy{
		client:        api,
		webhookSecret: cfg.WebhookSecret,
		now:           time.Now,
	}, nil
}

func (s *Strategy) ProviderName() string { return "stripe" }

func (s *Strategy) SupportsSubscriptions() bool { return true }

// CreateCheckout opens a hosted Checkout Session for the order. Line items are
// sent as inline price_data so nothing needs to pre-exist in the Stripe
// dashboard.
func (s *Strategy) CreateCheckout(ctx context.Context, order *orders.Order, successURL, cancelURL string) (*payment.CheckoutSession, error) {
	if order.IsEmpty() {
		return nil, payment.ErrInvalidRequest("order has no line items")
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Mode:       stripe.String(string(order.Mode)),
		LineItems:  make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.LineItems)),
	}
	params.Context = ctx

	for _, item := range order.LineItems {
		li, err := lineItemParams(item)
		if err != nil {
			return nil, err
		}
		params.LineItems = append(params.LineItems, li)
	}

	if order.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(order.CustomerEmail)
	}

	for k, v := range order.Metadata {
		params.AddMetadata(k, v)
	}
	// Written last so nothing in caller metadata can shadow it; the webhook
	// side relies on this key to correlate sessions back to orders.
	params.AddMetadata("order_id", order.ID)

	if suffix, ok := order.Metadata[metadataStatementSuffix]; ok && order.Mode == orders.ModePayment {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			StatementDescriptorSuffix: stripe.String(suffix),
		}
	}

	key := order.IdempotencyKey
	if key == "" {
		key = order.ID
	}
	params.IdempotencyKey = stripe.String(key)

	session, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, classifyError(err)
	}

	return sessionFromStripe(session, order), nil
}

func lineItemParams(item orders.LineItem) (*stripe.CheckoutSessionLineItemParams, error) {
	if item.UnitPrice.Amount <= 0 {
		return nil, &payment.Error{
			Kind:    payment.KindInvalidPrice,
			Message: "line item " + item.ProductID + " has non-positive price",
		}
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(item.Name),
	}
	if item.Description != "" {
		productData.Description = stripe.String(item.Description)
	}
	if item.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{item.ImageURL})
	}

	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:    stripe.String(item.UnitPrice.Currency.Code()),
		UnitAmount:  stripe.Int64(item.UnitPrice.Amount),
		ProductData: productData,
	}

	if item.BillingInterval.IsRecurring() {
		interval, err := recurringInterval(item.BillingInterval)
		if err != nil {
			return nil, err
		}
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(interval),
		}
	}

	return &stripe.CheckoutSessionLineItemParams{
		PriceData: priceData,
		Quantity:  stripe.Int64(int64(item.Quantity)),
	}, nil
}

func recurringInterval(interval catalog.BillingInterval) (string, error) {
	switch interval {
	case catalog.IntervalWeekly:
		return "week", nil
	case catalog.IntervalMonthly:
		return "month", nil
	case catalog.IntervalYearly:
		return "year", nil
	}
	return "", payment.ErrInvalidRequest("billing interval %q is not recurring", interval)
}

func sessionFromStripe(session *stripe.CheckoutSession, order *orders.Order) *payment.CheckoutSession {
	cs := &payment.CheckoutSession{
		SessionID:   session.ID,
		OrderID:     order.ID,
		Provider:    "stripe",
		CheckoutURL: session.URL,
		Status:      NormalizeSessionStatus(string(session.Status)),
		CreatedAt:   time.Now().UTC(),
	}

	if session.ExpiresAt > 0 {
		expires := time.Unix(session.ExpiresAt, 0).UTC()
		cs.ExpiresAt = &expires
	}
	if session.PaymentIntent != nil {
		cs.PaymentIntentID = session.PaymentIntent.ID
	}
	if session.Customer != nil {
		cs.CustomerID = session.Customer.ID
	}

	return cs
}

// classifyError maps SDK failures onto the service error taxonomy. Anything
// that never reached Stripe is a network error.
func classifyError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusTooManyRequests {
			return payment.ErrRateLimited("stripe")
		}
		msg := stripeErr.Msg
		if msg == "" {
			msg = string(stripeErr.Code)
		}
		return payment.ErrProvider("stripe", "%s", msg)
	}
	return payment.ErrNetwork("stripe request failed: %v", err)
}
