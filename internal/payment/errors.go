package payment

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a payment error. Every kind maps to one HTTP status.
type Kind string

const (
	KindConfiguration             Kind = "configuration"
	KindInvalidRequest            Kind = "invalid_request"
	KindProductNotFound           Kind = "product_not_found"
	KindInvalidPrice              Kind = "invalid_price"
	KindUnsupportedCurrency       Kind = "unsupported_currency"
	KindProviderError             Kind = "provider_error"
	KindNetworkError              Kind = "network_error"
	KindWebhookVerificationFailed Kind = "webhook_verification_failed"
	KindWebhookParseError         Kind = "webhook_parse_error"
	KindCheckoutCreationFailed    Kind = "checkout_creation_failed"
	KindSessionNotFound           Kind = "session_not_found"
	KindPaymentDeclined           Kind = "payment_declined"
	KindIdempotencyConflict       Kind = "idempotency_conflict"
	KindRateLimited               Kind = "rate_limited"
	KindInternal                  Kind = "internal"
	KindSerialization             Kind = "serialization"
)

// Error is the typed error for all payment operations. Provider is set when a
// specific payment provider produced or caused the failure.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// StatusCode returns the HTTP status this error maps to.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidRequest, KindInvalidPrice, KindUnsupportedCurrency, KindWebhookParseError:
		return http.StatusBadRequest
	case KindWebhookVerificationFailed:
		return http.StatusUnauthorized
	case KindPaymentDeclined:
		return http.StatusPaymentRequired
	case KindProductNotFound, KindSessionNotFound:
		return http.StatusNotFound
	case KindIdempotencyConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindProviderError:
		return http.StatusBadGateway
	case KindNetworkError:
		return http.StatusServiceUnavailable
	case KindConfiguration, KindCheckoutCreationFailed, KindInternal, KindSerialization:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Retryable is advisory only; nothing in this service retries. Callers that
// sit in front of it may use it to decide.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetworkError, KindRateLimited, KindProviderError:
		return true
	}
	return false
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrConfiguration(format string, args ...any) *Error {
	return newError(KindConfiguration, format, args...)
}

func ErrInvalidRequest(format string, args ...any) *Error {
	return newError(KindInvalidRequest, format, args...)
}

func ErrProductNotFound(productID string) *Error {
	return newError(KindProductNotFound, "product not found: %s", productID)
}

func ErrUnsupportedCurrency(currency string) *Error {
	return newError(KindUnsupportedCurrency, "unsupported currency: %s", currency)
}

func ErrProvider(provider, format string, args ...any) *Error {
	e := newError(KindProviderError, format, args...)
	e.Provider = provider
	return e
}

func ErrNetwork(format string, args ...any) *Error {
	return newError(KindNetworkError, format, args...)
}

func ErrWebhookVerification(format string, args ...any) *Error {
	return newError(KindWebhookVerificationFailed, format, args...)
}

func ErrWebhookParse(format string, args ...any) *Error {
	return newError(KindWebhookParseError, format, args...)
}

func ErrRateLimited(provider string) *Error {
	e := newError(KindRateLimited, "rate limited by %s", provider)
	e.Provider = provider
	return e
}

func ErrInternal(format string, args ...any) *Error {
	return newError(KindInternal, format, args...)
}

func ErrSerialization(format string, args ...any) *Error {
	return newError(KindSerialization, format, args...)
}
