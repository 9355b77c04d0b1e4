package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-app/internal/domain/money"
)

func checkoutCompletedEvent() *Event {
	return &Event{
		EventID:  "evt_test",
		Type:     EventCheckoutCompleted,
		RawType:  "checkout.session.completed",
		Provider: "stripe",
		Raw: map[string]any{
			"id":             "cs_test_123",
			"payment_intent": "pi_test_456",
			"subscription":   "sub_test_1",
			"customer":       "cus_test_789",
			"customer_details": map[string]any{
				"email": "buyer@example.com",
			},
			"amount_total":   float64(1000),
			"currency":       "usd",
			"payment_status": "paid",
			"metadata": map[string]any{
				"order_id": "ord_test_abc",
				"nested":   map[string]any{"dropped": true},
			},
		},
		Timestamp: time.Now(),
	}
}

func TestCheckoutCompletedFromEvent(t *testing.T) {
	data, err := CheckoutCompletedFromEvent(checkoutCompletedEvent())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", data.SessionID)
	assert.Equal(t, "pi_test_456", data.PaymentIntentID)
	assert.Equal(t, "sub_test_1", data.SubscriptionID)
	assert.Equal(t, "cus_test_789", data.CustomerID)
	assert.Equal(t, "buyer@example.com", data.CustomerEmail)
	assert.Equal(t, int64(1000), data.AmountTotal)
	assert.Equal(t, money.USD, data.Currency)
	assert.True(t, data.IsPaid())

	orderID, ok := data.OrderID()
	require.True(t, ok)
	assert.Equal(t, "ord_test_abc", orderID)

	// Non-string metadata values are dropped from the flattened map.
	_, ok = data.Metadata["nested"]
	assert.False(t, ok)
}

func TestCheckoutCompletedUnknownCurrencyDefaultsUSD(t *testing.T) {
	event := checkoutCompletedEvent()
	event.Raw["currency"] = "xbt"

	data, err := CheckoutCompletedFromEvent(event)
	require.NoError(t, err)
	assert.Equal(t, money.USD, data.Currency)
}

func TestCheckoutCompletedMissingFieldsAreOptional(t *testing.T) {
	event := &Event{
		Type: EventCheckoutCompleted,
		Raw:  map[string]any{"id": "cs_min"},
	}

	data, err := CheckoutCompletedFromEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "cs_min", data.SessionID)
	assert.Equal(t, "unknown", data.PaymentStatus)
	assert.False(t, data.IsPaid())
	_, ok := data.OrderID()
	assert.False(t, ok)
}

func TestCheckoutCompletedRequiresSessionID(t *testing.T) {
	event := &Event{Type: EventCheckoutCompleted, Raw: map[string]any{}}
	_, err := CheckoutCompletedFromEvent(event)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindWebhookParseError, pe.Kind)

	event.Raw = nil
	_, err = CheckoutCompletedFromEvent(event)
	assert.Error(t, err)
}

type recordingHandler struct {
	LogHandler
	completed *CheckoutCompleted
	unknown   *Event
	failWith  error
}

func (h *recordingHandler) OnCheckoutCompleted(data *CheckoutCompleted) error {
	h.completed = data
	return h.failWith
}

func (h *recordingHandler) OnUnknownEvent(event *Event) error {
	h.unknown = event
	return nil
}

func TestDispatchRoutesCheckoutCompleted(t *testing.T) {
	h := &recordingHandler{}
	require.NoError(t, Dispatch(h, checkoutCompletedEvent()))
	require.NotNil(t, h.completed)
	assert.Equal(t, "cs_test_123", h.completed.SessionID)
}

func TestDispatchUnknownEventNeverErrors(t *testing.T) {
	h := &recordingHandler{}
	event := &Event{
		Type:    EventUnknown,
		RawType: "some.future.event",
	}
	require.NoError(t, Dispatch(h, event))
	require.NotNil(t, h.unknown)
	assert.Equal(t, "some.future.event", h.unknown.RawType)
}

func TestDispatchPropagatesHookFailure(t *testing.T) {
	h := &recordingHandler{failWith: ErrInternal("fulfillment down")}
	err := Dispatch(h, checkoutCompletedEvent())
	require.Error(t, err)
	pe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInternal, pe.Kind)
}

func TestDispatchLogHandlerHandlesEverything(t *testing.T) {
	h := NewLogHandler(nil)
	for _, typ := range []EventType{
		EventCheckoutCompleted, EventPaymentSucceeded, EventPaymentFailed,
		EventSubscriptionCreated, EventSubscriptionCancelled,
		EventSubscriptionRenewed, EventRefundIssued, EventUnknown,
	} {
		event := &Event{Type: typ, Raw: map[string]any{"id": "cs_x"}}
		assert.NoError(t, Dispatch(h, event), "type %s", typ)
	}
}
