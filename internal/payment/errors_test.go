package payment

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindConfiguration, http.StatusInternalServerError},
		{KindInvalidRequest, http.StatusBadRequest},
		{KindProductNotFound, http.StatusNotFound},
		{KindInvalidPrice, http.StatusBadRequest},
		{KindUnsupportedCurrency, http.StatusBadRequest},
		{KindProviderError, http.StatusBadGateway},
		{KindNetworkError, http.StatusServiceUnavailable},
		{KindWebhookVerificationFailed, http.StatusUnauthorized},
		{KindWebhookParseError, http.StatusBadRequest},
		{KindCheckoutCreationFailed, http.StatusInternalServerError},
		{KindSessionNotFound, http.StatusNotFound},
		{KindPaymentDeclined, http.StatusPaymentRequired},
		{KindIdempotencyConflict, http.StatusConflict},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindInternal, http.StatusInternalServerError},
		{KindSerialization, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		e := &Error{Kind: tc.kind, Message: "x"}
		assert.Equal(t, tc.want, e.StatusCode(), "kind %s", tc.kind)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, ErrNetwork("timeout").Retryable())
	assert.True(t, ErrRateLimited("stripe").Retryable())
	assert.True(t, ErrProvider("stripe", "boom").Retryable())
	assert.False(t, ErrInvalidRequest("bad data").Retryable())
	assert.False(t, ErrWebhookVerification("signature mismatch").Retryable())
}

func TestErrorStringIncludesProvider(t *testing.T) {
	e := ErrProvider("stripe", "card declined")
	assert.Contains(t, e.Error(), "stripe")
	assert.Contains(t, e.Error(), "card declined")
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrProductNotFound("p1"))
	pe, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindProductNotFound, pe.Kind)

	_, ok = AsError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
