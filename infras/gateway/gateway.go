// Package gateway is the payment provider boundary: one charge of a stored
// payment method, made idempotent by a caller supplied key.
package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	KindCardDeclined   Kind = "card_declined"
	KindRequiresAction Kind = "requires_action"
	KindInvalidRequest Kind = "invalid_request"
	// KindConflict is a key the provider already saw with other parameters.
	// That earlier request may have charged, so it is neither a refusal nor
	// worth repeating unchanged.
	KindConflict Kind = "idempotency_conflict"
	// KindTransient covers network failures, timeouts, provider 5xx, rate limits
	// and idempotency key contention. The charge outcome is unknown.
	KindTransient Kind = "transient"
)

// Definitive reports whether the provider refused the charge for good. Another
// call with the same key would only replay the refusal.
func (k Kind) Definitive() bool {
	return k == KindCardDeclined || k == KindRequiresAction || k == KindInvalidRequest
}

// DefinitiveKinds lists every Kind for which Definitive is true.
var DefinitiveKinds = []Kind{KindCardDeclined, KindRequiresAction, KindInvalidRequest}

// Retryable reports whether the same request may succeed if sent again.
func (k Kind) Retryable() bool {
	return k == KindTransient
}

type ChargeRequest struct {
	Amount          int64
	Currency        string
	IdempotencyKey  string
	PaymentMethodID string
	CustomerID      string
	Description     string
	Metadata        map[string]string
}

type Charge struct {
	ID     string
	Status string
	// Replayed is set when the provider answered from its idempotency cache.
	Replayed bool
}

type Error struct {
	Kind       Kind
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a gateway error, KindTransient for anything else.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}

	return KindTransient
}

type Gateway interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
}
