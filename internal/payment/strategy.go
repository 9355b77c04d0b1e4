package payment

import (
	"context"
	"time"

	"checkout-app/internal/domain/orders"
)

// Strategy is the provider contract. Implementations talk to one payment
// provider; the rest of the service only sees this interface.
type Strategy interface {
	// CreateCheckout opens a hosted checkout session for the order. Must fail
	// with an invalid-request error if the order has no items.
	CreateCheckout(ctx context.Context, order *orders.Order, successURL, cancelURL string) (*CheckoutSession, error)

	// VerifyWebhook checks the signature header against the raw payload and
	// returns the normalized event. The payload must be the request body
	// verbatim — re-serialized JSON will not verify.
	VerifyWebhook(payload []byte, signatureHeader string) (*Event, error)

	// ProviderName is the stable registry key, e.g. "stripe".
	ProviderName() string

	SupportsSubscriptions() bool
}

// Selector resolves a provider name to a registered strategy, falling back to
// the configured default. Populated once at startup, then read-only.
type Selector struct {
	strategies      map[string]Strategy
	defaultProvider string
}

func NewSelector(defaultProvider string) *Selector {
	return &Selector{
		strategies:      make(map[string]Strategy),
		defaultProvider: defaultProvider,
	}
}

// Register keys the strategy by its own provider name. Registering the same
// name twice keeps the last one.
func (s *Selector) Register(strategy Strategy) {
	s.strategies[strategy.ProviderName()] = strategy
}

func (s *Selector) Get(provider string) (Strategy, bool) {
	st, ok := s.strategies[provider]
	return st, ok
}

func (s *Selector) Default() (Strategy, bool) {
	return s.Get(s.defaultProvider)
}

// GetOrDefault resolves a possibly-empty provider name. Unknown names fall
// back to the default rather than erroring, mirroring site resolution.
func (s *Selector) GetOrDefault(provider string) (Strategy, bool) {
	if provider != "" {
		if st, ok := s.Get(provider); ok {
			return st, true
		}
	}
	return s.Default()
}

func (s *Selector) Has(provider string) bool {
	_, ok := s.strategies[provider]
	return ok
}

func (s *Selector) Providers() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	return names
}

// SessionStatus is the lifecycle state of a checkout session.
type SessionStatus string

const (
	StatusOpen      SessionStatus = "open"
	StatusComplete  SessionStatus = "complete"
	StatusExpired   SessionStatus = "expired"
	StatusFailed    SessionStatus = "failed"
	StatusCancelled SessionStatus = "cancelled"
)

// CheckoutSession is what a provider hands back when a checkout is opened.
type CheckoutSession struct {
	SessionID       string        `json:"session_id"`
	OrderID         string        `json:"order_id"`
	Provider        string        `json:"provider"`
	CheckoutURL     string        `json:"checkout_url"`
	Status          SessionStatus `json:"status"`
	ExpiresAt       *time.Time    `json:"expires_at,omitempty"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	CustomerID      string        `json:"customer_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// IsActive reports whether the customer can still pay through this session.
func (cs *CheckoutSession) IsActive() bool {
	if cs.Status != StatusOpen {
		return false
	}
	return cs.ExpiresAt == nil || cs.ExpiresAt.After(time.Now())
}

// CheckoutURLs is the flat single-tenant URL configuration used when no site
// registry entry applies.
type CheckoutURLs struct {
	BaseURL     string
	SuccessPath string
	CancelPath  string
}

func NewCheckoutURLs(baseURL string) CheckoutURLs {
	return CheckoutURLs{
		BaseURL:     baseURL,
		SuccessPath: "/checkout/success",
		CancelPath:  "/checkout/cancel",
	}
}

func (u CheckoutURLs) SuccessURL() string {
	return u.BaseURL + u.SuccessPath
}

func (u CheckoutURLs) CancelURL() string {
	return u.BaseURL + u.CancelPath
}
