package model

import (
	"errors"
	"fmt"

	"tourbook/infras/gateway"
	"tourbook/shared/retry"
)

const idempotencyKeyFormat = "booking-request-%d-charge-%d"

// IdempotencyKey names the charge of one approval round. A round only ends
// with a definitive decline, so every retry and every re-approval after an
// unknown outcome reuses the key of the charge that may already exist.
func IdempotencyKey(bookingID int64, round int) string {
	return fmt.Sprintf(idempotencyKeyFormat, bookingID, round)
}

type ChargeInput struct {
	BookingID       int64
	Amount          int64
	Currency        string
	PaymentMethodID string
	CustomerID      string
	AdminID         string
}

type Result struct {
	ChargeID       string
	Attempts       int
	IdempotencyKey string
	Replayed       bool
}

// Error is a charge that did not go through. Attempts counts gateway calls.
type Error struct {
	Kind     gateway.Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reason is the provider's explanation, without retry bookkeeping.
func (e *Error) Reason() string {
	var gerr *gateway.Error
	if errors.As(e.Err, &gerr) {
		if gerr.Message != "" {
			return gerr.Message
		}

		return string(gerr.Kind)
	}

	var rerr *retry.Error
	if errors.As(e.Err, &rerr) && rerr.Err != nil {
		return rerr.Err.Error()
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return string(e.Kind)
}

// Classify is the payment classifier: unknown outcomes are retried under the
// same idempotency key, anything the provider answered stops the loop.
func Classify(err error) retry.Class {
	if gateway.KindOf(err).Retryable() {
		return retry.Retryable
	}

	return retry.Terminal
}
