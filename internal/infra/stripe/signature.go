package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"checkout-app/internal/payment"
)

// toleranceSeconds bounds the replay window for webhook deliveries. Stripe
// documents 5 minutes; the comparison uses this server's own clock.
const toleranceSeconds = 300

// signatureHeader is the parsed form of a "t=<unix>,v1=<hex>[,v1=<hex>...]"
// header. Multiple v1 entries occur during secret rotation.
type signatureHeader struct {
	timestamp  int64
	signatures []string
}

// parseSignatureHeader splits the header into timestamp and v1 signatures.
// Unknown keys and malformed segments are skipped for forward compatibility;
// only a missing timestamp or an empty signature list is fatal.
func parseSignatureHeader(header string) (*signatureHeader, error) {
	var (
		timestamp  int64
		haveTS     bool
		signatures []string
	)

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			if ts, err := strconv.ParseInt(kv[1], 10, 64); err == nil {
				timestamp = ts
				haveTS = true
			}
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if !haveTS {
		return nil, payment.ErrWebhookVerification("missing timestamp in signature header")
	}
	if len(signatures) == 0 {
		return nil, payment.ErrWebhookVerification("no v1 signature found")
	}

	return &signatureHeader{timestamp: timestamp, signatures: signatures}, nil
}

// computeSignature returns the hex HMAC-SHA256 of "<timestamp>.<payload>"
// under the webhook secret.
func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// signaturesMatch accepts the header if any presented signature equals the
// expected one. hmac.Equal is constant-time, so an attacker learns nothing
// about where a guess first diverges.
func signaturesMatch(presented []string, expected string) bool {
	match := false
	for _, sig := range presented {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			match = true
		}
	}
	return match
}
