package stripe

import (
	"encoding/json"
	"time"

	"checkout-app/internal/domain/money"
	"checkout-app/internal/payment"
)

// webhookEnvelope is the outer shape of a Stripe event. Everything inside
// data.object stays schemaless; extraction from it is best-effort.
type webhookEnvelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object map[string]any `json:"object"`
	} `json:"data"`
}

// eventTypeMap translates Stripe event types into the provider-neutral set.
// Types not listed here become EventUnknown, never an error.
var eventTypeMap = map[string]payment.EventType{
	"checkout.session.completed":    payment.EventCheckoutCompleted,
	"payment_intent.succeeded":      payment.EventPaymentSucceeded,
	"payment_intent.payment_failed": payment.EventPaymentFailed,
	"customer.subscription.created": payment.EventSubscriptionCreated,
	"customer.subscription.deleted": payment.EventSubscriptionCancelled,
	"invoice.paid":                  payment.EventSubscriptionRenewed,
	"charge.refunded":               payment.EventRefundIssued,
}

// VerifyWebhook authenticates the raw payload against the Stripe-Signature
// header and returns the normalized event. The signature covers the exact
// bytes Stripe sent, so payload must be the unmodified request body.
func (s *Strategy) VerifyWebhook(payload []byte, signatureHeader string) (*payment.Event, error) {
	header, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	age := s.now().Unix() - header.timestamp
	if age > toleranceSeconds || age < -toleranceSeconds {
		return nil, payment.ErrWebhookVerification("timestamp outside tolerance (%ds old)", age)
	}

	expected := computeSignature(s.webhookSecret, header.timestamp, payload)
	if !signaturesMatch(header.signatures, expected) {
		return nil, payment.ErrWebhookVerification("signature mismatch")
	}

	return normalizeEvent(payload)
}

// normalizeEvent parses a verified payload into the neutral event shape.
func normalizeEvent(payload []byte) (*payment.Event, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, payment.ErrWebhookParse("invalid event JSON: %v", err)
	}
	if envelope.Type == "" {
		return nil, payment.ErrWebhookParse("event has no type")
	}

	eventType, ok := eventTypeMap[envelope.Type]
	if !ok {
		eventType = payment.EventUnknown
	}

	event := &payment.Event{
		EventID:  envelope.ID,
		Type:     eventType,
		RawType:  envelope.Type,
		Provider: "stripe",
		Raw:      envelope.Data.Object,
	}

	if envelope.Created > 0 {
		event.Timestamp = time.Unix(envelope.Created, 0).UTC()
	} else {
		event.Timestamp = time.Now().UTC()
	}

	extractEventFields(event)
	return event, nil
}

// extractEventFields pulls the common identifiers out of the data object.
// Field names differ per object type: checkout sessions carry amount_total,
// payment intents carry amount, charges carry amount_refunded.
func extractEventFields(event *payment.Event) {
	obj := event.Raw
	if obj == nil {
		return
	}

	if id, ok := obj["id"].(string); ok {
		switch {
		case event.Type == payment.EventCheckoutCompleted:
			event.SessionID = id
		case event.Type == payment.EventPaymentSucceeded || event.Type == payment.EventPaymentFailed:
			event.PaymentIntentID = id
		}
	}
	if pi, ok := obj["payment_intent"].(string); ok && event.PaymentIntentID == "" {
		event.PaymentIntentID = pi
	}

	if details, ok := obj["customer_details"].(map[string]any); ok {
		event.CustomerEmail, _ = details["email"].(string)
	}
	if event.CustomerEmail == "" {
		if email, ok := obj["customer_email"].(string); ok {
			event.CustomerEmail = email
		}
	}
	if event.CustomerEmail == "" {
		if email, ok := obj["receipt_email"].(string); ok {
			event.CustomerEmail = email
		}
	}

	for _, field := range []string{"amount_total", "amount", "amount_paid"} {
		if amount, ok := obj[field].(float64); ok {
			paid := int64(amount)
			event.AmountPaid = &paid
			break
		}
	}

	if code, ok := obj["currency"].(string); ok {
		if currency, ok := money.ParseCurrency(code); ok {
			event.Currency = &currency
		}
	}
}
