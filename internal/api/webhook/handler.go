package webhook

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-app/internal/payment"
)

// signatureHeaders maps a provider name to the HTTP header carrying its
// webhook signature.
var signatureHeaders = map[string]string{
	"stripe": "Stripe-Signature",
}

// Handler receives provider webhooks, verifies them through the matching
// strategy and dispatches the normalized event. The raw body is passed to
// verification verbatim; any re-serialization would break the signature.
type Handler struct {
	selector  *payment.Selector
	events    payment.Handler
	forwarder *Forwarder
	log       *slog.Logger
}

func NewHandler(sel *payment.Selector, events payment.Handler, forwarder *Forwarder, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if events == nil {
		events = payment.NewLogHandler(log)
	}
	return &Handler{selector: sel, events: events, forwarder: forwarder, log: log}
}

// Receive handles POST /webhook/:provider.
func (h *Handler) Receive(c *gin.Context) {
	provider := c.Param("provider")
	strategy, ok := h.selector.Get(provider)
	if !ok {
		// A webhook arriving for an unregistered provider means the endpoint
		// was configured upstream without this service knowing about it.
		writeError(c, payment.ErrConfiguration("no strategy registered for provider %q", provider))
		return
	}

	headerName, ok := signatureHeaders[provider]
	if !ok {
		headerName = "Webhook-Signature"
	}
	signature := c.GetHeader(headerName)
	if signature == "" {
		writeError(c, payment.ErrInvalidRequest("missing %s header", headerName))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, payment.ErrInvalidRequest("unreadable request body"))
		return
	}

	event, err := strategy.VerifyWebhook(payload, signature)
	if err != nil {
		h.log.Warn("webhook rejected", "provider", provider, "error", err)
		writeError(c, err)
		return
	}

	h.log.Info("webhook verified",
		"provider", provider,
		"event_id", event.EventID,
		"type", event.Type,
		"raw_type", event.RawType)

	if err := payment.Dispatch(h.events, event); err != nil {
		h.log.Error("webhook dispatch failed", "event_id", event.EventID, "error", err)
		writeError(c, err)
		return
	}

	if h.forwarder.Enabled() {
		go h.forwarder.Forward(event.EventID, payload, signature)
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func writeError(c *gin.Context, err error) {
	if pe, ok := payment.AsError(err); ok {
		c.JSON(pe.StatusCode(), gin.H{
			"error":   pe.Message,
			"code":    pe.StatusCode(),
			"details": string(pe.Kind),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal error",
		"code":  http.StatusInternalServerError,
	})
}
