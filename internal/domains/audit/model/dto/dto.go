package dto

import (
	"encoding/json"

	"tourbook/internal/domains/audit/model"
	"tourbook/shared/constant"
	"tourbook/shared/timezone"
)

type EventResponse struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   string          `json:"actor_id"`
	CreatedAt string          `json:"created_at"`
}

func (r *EventResponse) FromModel(event model.Event) {
	r.ID = event.ID.String()
	r.EventType = string(event.EventType)
	r.Payload = json.RawMessage(event.Payload)
	r.ActorID = event.ActorID
	r.CreatedAt = timezone.Format(event.CreatedAt, constant.DateFormat)

	if len(r.Payload) == 0 {
		r.Payload = json.RawMessage("{}")
	}
}

type PaymentAttemptResponse struct {
	Attempt        int     `json:"attempt"`
	Provider       string  `json:"provider"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	IdempotencyKey string  `json:"idempotency_key"`
	Outcome        string  `json:"outcome"`
	ChargeID       *string `json:"charge_id,omitempty"`
	ErrorKind      *string `json:"error_kind,omitempty"`
	ErrorDetail    *string `json:"error_detail,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func (r *PaymentAttemptResponse) FromModel(attempt model.PaymentAttempt) {
	r.Attempt = attempt.Attempt
	r.Provider = attempt.Provider
	r.Amount = attempt.Amount
	r.Currency = attempt.Currency
	r.IdempotencyKey = attempt.IdempotencyKey
	r.Outcome = string(attempt.Outcome)
	r.ChargeID = attempt.ChargeID
	r.ErrorKind = attempt.ErrorKind
	r.ErrorDetail = attempt.ErrorDetail
	r.CreatedAt = timezone.Format(attempt.CreatedAt, constant.DateFormat)
}

// StreamMessage is the Kafka representation of an audit event.
type StreamMessage struct {
	ID               string          `json:"id"`
	BookingRequestID int64           `json:"booking_request_id"`
	EventType        string          `json:"event_type"`
	Payload          json.RawMessage `json:"payload"`
	ActorID          string          `json:"actor_id"`
	CreatedAt        string          `json:"created_at"`
}

func (m *StreamMessage) FromModel(event model.Event) {
	m.ID = event.ID.String()
	m.BookingRequestID = event.BookingRequestID
	m.EventType = string(event.EventType)
	m.Payload = json.RawMessage(event.Payload)
	m.ActorID = event.ActorID
	m.CreatedAt = event.CreatedAt.UTC().Format(constant.DateFormat)
}
