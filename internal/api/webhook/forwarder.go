package webhook

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Forwarder relays accepted webhooks to a downstream sink. The raw payload
// and signature header are passed through untouched so the sink can run its
// own verification. Delivery is fire-and-forget: a dead sink must never make
// the provider retry, so errors are logged and dropped.
type Forwarder struct {
	client *resty.Client
	url    string
	log    *slog.Logger
}

func NewForwarder(url string, log *slog.Logger) *Forwarder {
	if log == nil {
		log = slog.Default()
	}
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Forwarder{client: client, url: url, log: log}
}

func (f *Forwarder) Enabled() bool {
	return f != nil && f.url != ""
}

// Forward posts the raw webhook body to the sink. Callers run this in a
// goroutine; it uses its own context so an already-finished request cannot
// cancel the delivery.
func (f *Forwarder) Forward(eventID string, payload []byte, signatureHeader string) {
	if !f.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Stripe-Signature", signatureHeader).
		SetBody(payload).
		Post(f.url)
	if err != nil {
		f.log.Warn("webhook forward failed", "event_id", eventID, "error", err)
		return
	}
	if resp.IsError() {
		f.log.Warn("webhook forward rejected",
			"event_id", eventID,
			"status", resp.StatusCode())
		return
	}

	f.log.Debug("webhook forwarded", "event_id", eventID, "status", resp.StatusCode())
}
