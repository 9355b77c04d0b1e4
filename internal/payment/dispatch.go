package payment

import (
	"log/slog"

	"checkout-app/internal/domain/money"
)

// Handler receives normalized webhook events, one hook per event type plus a
// catch-all. Embed LogHandler to only override the hooks you care about.
type Handler interface {
	OnCheckoutCompleted(data *CheckoutCompleted) error
	OnPaymentSucceeded(event *Event) error
	OnPaymentFailed(event *Event) error
	OnSubscriptionCreated(event *Event) error
	OnSubscriptionCancelled(event *Event) error
	OnSubscriptionRenewed(event *Event) error
	OnRefundIssued(event *Event) error
	OnUnknownEvent(event *Event) error
}

// Dispatch routes the event to exactly one handler hook. Checkout-completed
// events get the richer detail record re-derived from the raw payload. Hook
// failures propagate to the caller; nothing is swallowed here.
func Dispatch(handler Handler, event *Event) error {
	switch event.Type {
	case EventCheckoutCompleted:
		data, err := CheckoutCompletedFromEvent(event)
		if err != nil {
			return err
		}
		return handler.OnCheckoutCompleted(data)
	case EventPaymentSucceeded:
		return handler.OnPaymentSucceeded(event)
	case EventPaymentFailed:
		return handler.OnPaymentFailed(event)
	case EventSubscriptionCreated:
		return handler.OnSubscriptionCreated(event)
	case EventSubscriptionCancelled:
		return handler.OnSubscriptionCancelled(event)
	case EventSubscriptionRenewed:
		return handler.OnSubscriptionRenewed(event)
	case EventRefundIssued:
		return handler.OnRefundIssued(event)
	default:
		return handler.OnUnknownEvent(event)
	}
}

// CheckoutCompleted is the detail record for a completed checkout session,
// extracted from the provider's raw session object.
type CheckoutCompleted struct {
	SessionID       string
	PaymentIntentID string
	SubscriptionID  string
	CustomerID      string
	CustomerEmail   string
	AmountTotal     int64
	Currency        money.Currency
	PaymentStatus   string
	Metadata        map[string]string
}

// IsPaid reports whether the provider marked the session as paid.
func (c *CheckoutCompleted) IsPaid() bool {
	return c.PaymentStatus == "paid"
}

// OrderID returns the internal order id the facade stored in session
// metadata when the checkout was created.
func (c *CheckoutCompleted) OrderID() (string, bool) {
	id, ok := c.Metadata["order_id"]
	return id, ok
}

// CheckoutCompletedFromEvent re-derives checkout detail from the raw payload.
// Only the session id is required; every other field is best-effort. An
// unrecognized currency code falls back to USD. Metadata keeps string values
// only — provider SDKs may nest objects there, which downstream consumers
// of this flattened map cannot use.
func CheckoutCompletedFromEvent(event *Event) (*CheckoutCompleted, error) {
	if event.Raw == nil {
		return nil, ErrWebhookParse("checkout event has no raw data")
	}

	sessionID, _ := event.Raw["id"].(string)
	if sessionID == "" {
		return nil, ErrWebhookParse("checkout event missing session id")
	}

	data := &CheckoutCompleted{
		SessionID:     sessionID,
		Currency:      money.USD,
		PaymentStatus: "unknown",
		Metadata:      make(map[string]string),
	}

	data.PaymentIntentID, _ = event.Raw["payment_intent"].(string)
	data.SubscriptionID, _ = event.Raw["subscription"].(string)
	data.CustomerID, _ = event.Raw["customer"].(string)

	if details, ok := event.Raw["customer_details"].(map[string]any); ok {
		data.CustomerEmail, _ = details["email"].(string)
	}

	// JSON numbers decode as float64.
	if amount, ok := event.Raw["amount_total"].(float64); ok {
		data.AmountTotal = int64(amount)
	}

	if code, ok := event.Raw["currency"].(string); ok {
		if currency, ok := money.ParseCurrency(code); ok {
			data.Currency = currency
		}
	}

	if status, ok := event.Raw["payment_status"].(string); ok {
		data.PaymentStatus = status
	}

	if meta, ok := event.Raw["metadata"].(map[string]any); ok {
		for k, v := range meta {
			if s, ok := v.(string); ok {
				data.Metadata[k] = s
			}
		}
	}

	return data, nil
}

// LogHandler is the default handler: it logs every event and succeeds. Used
// directly for observability-only deployments, or embedded by handlers that
// only care about some hooks.
type LogHandler struct {
	Log *slog.Logger
}

func NewLogHandler(log *slog.Logger) *LogHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LogHandler{Log: log}
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

func (h *LogHandler) OnCheckoutCompleted(data *CheckoutCompleted) error {
	h.logger().Info("checkout completed",
		"session_id", data.SessionID,
		"amount_total", data.AmountTotal,
		"currency", data.Currency.Code(),
		"paid", data.IsPaid())
	return nil
}

func (h *LogHandler) OnPaymentSucceeded(event *Event) error {
	h.logger().Info("payment succeeded", "payment_intent_id", event.PaymentIntentID)
	return nil
}

func (h *LogHandler) OnPaymentFailed(event *Event) error {
	h.logger().Warn("payment failed", "payment_intent_id", event.PaymentIntentID)
	return nil
}

func (h *LogHandler) OnSubscriptionCreated(event *Event) error {
	h.logger().Info("subscription created", "session_id", event.SessionID)
	return nil
}

func (h *LogHandler) OnSubscriptionCancelled(event *Event) error {
	h.logger().Info("subscription cancelled", "session_id", event.SessionID)
	return nil
}

func (h *LogHandler) OnSubscriptionRenewed(event *Event) error {
	h.logger().Info("subscription renewed", "session_id", event.SessionID)
	return nil
}

func (h *LogHandler) OnRefundIssued(event *Event) error {
	h.logger().Info("refund issued", "payment_intent_id", event.PaymentIntentID)
	return nil
}

func (h *LogHandler) OnUnknownEvent(event *Event) error {
	h.logger().Debug("unhandled webhook event", "raw_type", event.RawType)
	return nil
}
