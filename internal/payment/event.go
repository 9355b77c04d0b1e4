package payment

import (
	"time"

	"checkout-app/internal/domain/money"
)

// EventType is the provider-neutral event classification. Provider type
// strings that don't map to a known type become EventUnknown — never an
// error, so new provider events flow through untouched.
type EventType string

const (
	EventCheckoutCompleted     EventType = "checkout_completed"
	EventPaymentSucceeded      EventType = "payment_succeeded"
	EventPaymentFailed         EventType = "payment_failed"
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionRenewed   EventType = "subscription_renewed"
	EventRefundIssued          EventType = "refund_issued"
	EventUnknown               EventType = "unknown"
)

// Event is a verified, normalized webhook event. All extraction is
// best-effort: optional fields stay zero when the provider payload lacks
// them. Raw keeps the provider's data object for consumers that need
// provider-specific detail.
type Event struct {
	EventID string    `json:"event_id"`
	Type    EventType `json:"event_type"`

	// RawType is the provider's original type string, always set. For
	// EventUnknown it is the only type information available.
	RawType string `json:"raw_type"`

	Provider        string          `json:"provider"`
	SessionID       string          `json:"session_id,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	CustomerEmail   string          `json:"customer_email,omitempty"`
	AmountPaid      *int64          `json:"amount_paid,omitempty"`
	Currency        *money.Currency `json:"currency,omitempty"`

	Raw map[string]any `json:"raw_data,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
