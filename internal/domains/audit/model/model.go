package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

const (
	EventTableName  = "booking_request_events"
	EventEntityName = "booking_request_event"

	AttemptTableName  = "payment_attempts"
	AttemptEntityName = "payment_attempt"

	FieldID               = "id"
	FieldBookingRequestID = "booking_request_id"
	FieldEventType        = "event_type"
	FieldOutcome          = "outcome"
	FieldErrorKind        = "error_kind"
	FieldCreatedAt        = "created_at"
)

// SystemActor is the actor of events no admin triggered directly.
const SystemActor = "system"

type EventType string

const (
	EventSubmitted          EventType = "submitted"
	EventApproved           EventType = "approved"
	EventRejected           EventType = "rejected"
	EventPaymentFailed      EventType = "payment_failed"
	EventConfirmationFailed EventType = "confirmation_failed"
	EventEmailSent          EventType = "email_sent"
	EventEmailFailed        EventType = "email_failed"
)

// Event is one row of the append-only audit log of a booking request.
type Event struct {
	ID               uuid.UUID      `db:"id"`
	BookingRequestID int64          `db:"booking_request_id"`
	EventType        EventType      `db:"event_type"`
	Payload          types.JSONText `db:"payload"`
	ActorID          string         `db:"actor_id"`
	CreatedAt        time.Time      `db:"created_at"`
}

type AttemptOutcome string

const (
	OutcomeSuccess AttemptOutcome = "success"
	OutcomeFailed  AttemptOutcome = "failed"
	// OutcomeReplayed is a success the provider served from its idempotency
	// cache. The charge it reports was already recorded as OutcomeSuccess.
	OutcomeReplayed AttemptOutcome = "replayed"
)

// PaymentAttempt is one call to the payment provider, retries included.
type PaymentAttempt struct {
	ID               uuid.UUID      `db:"id"`
	BookingRequestID int64          `db:"booking_request_id"`
	Provider         string         `db:"provider"`
	Amount           int64          `db:"amount"`
	Currency         string         `db:"currency"`
	IdempotencyKey   string         `db:"idempotency_key"`
	Attempt          int            `db:"attempt"`
	Outcome          AttemptOutcome `db:"outcome"`
	ChargeID         *string        `db:"charge_id"`
	ErrorKind        *string        `db:"error_kind"`
	ErrorDetail      *string        `db:"error_detail"`
	CreatedAt        time.Time      `db:"created_at"`
}
