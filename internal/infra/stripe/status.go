package stripe

import (
	"strings"

	"checkout-app/internal/payment"
)

// NormalizeSessionStatus maps Stripe's checkout session status strings onto
// the provider-neutral set. A session freshly created by the API has status
// "open"; an empty string (older API versions omit it) is treated as open too.
func NormalizeSessionStatus(s string) payment.SessionStatus {
	switch strings.TrimSpace(s) {
	case "", "open":
		return payment.StatusOpen
	case "complete":
		return payment.StatusComplete
	case "expired":
		return payment.StatusExpired
	default:
		return payment.StatusFailed
	}
}
