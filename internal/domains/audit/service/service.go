package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/gateway"
	"tourbook/infras/kafka"
	"tourbook/infras/otel"
	"tourbook/internal/domains/audit/model"
	"tourbook/internal/domains/audit/model/dto"
	"tourbook/internal/domains/audit/repository"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
	"tourbook/shared/retry"
	"tourbook/shared/timezone"
)

const publishTimeout = 2 * time.Second

// Logger is the append-only audit trail of booking requests. Writes never fail
// the caller: a lost audit row is logged, the workflow carries on.
type Logger interface {
	Append(ctx context.Context, bookingID int64, eventType model.EventType, payload map[string]any, actorID string)
	RecordPaymentAttempt(ctx context.Context, attempt model.PaymentAttempt)
	DefinitiveDeclines(ctx context.Context, bookingID int64) (int, error)
	History(ctx context.Context, bookingID int64) ([]dto.EventResponse, error)
	PaymentAttempts(ctx context.Context, bookingID int64) ([]dto.PaymentAttemptResponse, error)
}

type serviceImpl struct {
	events   repository.Event
	attempts repository.PaymentAttempt
	kafka    kafka.Client
	topic    string
	policy   retry.Policy
	otel     otel.Otel
}

func New(events repository.Event, attempts repository.PaymentAttempt, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Logger {
	return &serviceImpl{
		events:   events,
		attempts: attempts,
		kafka:    kafkaClient,
		topic:    cfg.Kafka.Topics.BookingRequestEvents,
		policy:   retry.FromConfig("audit-store", cfg.Store.Retry),
		otel:     otel,
	}
}

func (s *serviceImpl) Append(ctx context.Context, bookingID int64, eventType model.EventType, payload map[string]any, actorID string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Append")
	defer scope.End()

	scope.SetAttribute(constant.OtelBookingIDAttributeKey, bookingID)
	scope.SetAttribute("event.type", string(eventType))

	if actorID == "" {
		actorID = model.SystemActor
	}

	if payload == nil {
		payload = map[string]any{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", bookingID).Str("event_type", string(eventType)).Msg("failed to encode audit payload")

		body = []byte("{}")
	}

	event := model.Event{
		ID:               uuid.New(),
		BookingRequestID: bookingID,
		EventType:        eventType,
		Payload:          body,
		ActorID:          actorID,
		CreatedAt:        timezone.Now(),
	}

	_, err = retry.Do(ctx, s.policy, gRepo.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, s.events.Insert(ctx, event)
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Int64("booking_id", bookingID).
			Str("event_type", string(eventType)).
			RawJSON("payload", body).
			Int("attempts", retry.Attempts(err)).
			Msg("failed to append audit event")

		return
	}

	s.publish(ctx, event)
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var msg dto.StreamMessage
	msg.FromModel(event)

	err := s.kafka.SendMessages(ctx, s.topic, kafka.Message{
		Key:   strconv.FormatInt(event.BookingRequestID, 10),
		Value: msg,
	})
	if err != nil {
		log.Warn().Err(err).Str("event_id", msg.ID).Msg("failed to stream audit event")
	}
}

func (s *serviceImpl) RecordPaymentAttempt(ctx context.Context, attempt model.PaymentAttempt) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.RecordPaymentAttempt")
	defer scope.End()

	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = timezone.Now()
	}

	_, err := retry.Do(ctx, s.policy, gRepo.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, s.attempts.Insert(ctx, attempt)
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Int64("booking_id", attempt.BookingRequestID).
			Str("idempotency_key", attempt.IdempotencyKey).
			Int("attempt", attempt.Attempt).
			Str("outcome", string(attempt.Outcome)).
			Msg("failed to record payment attempt")
	}
}

// DefinitiveDeclines counts the failed attempts the provider answered with a
// decision, as opposed to attempts whose outcome is unknown.
func (s *serviceImpl) DefinitiveDeclines(ctx context.Context, bookingID int64) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.DefinitiveDeclines")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	kinds := make([]string, 0, len(gateway.DefinitiveKinds))
	for _, kind := range gateway.DefinitiveKinds {
		kinds = append(kinds, string(kind))
	}

	filter := gDto.And(
		gDto.Filter{Field: model.FieldBookingRequestID, Value: bookingID, Operator: gDto.FilterOperatorEq},
		gDto.Filter{Field: model.FieldOutcome, Value: string(model.OutcomeFailed), Operator: gDto.FilterOperatorEq},
		gDto.Filter{Field: model.FieldErrorKind, Value: kinds, Operator: gDto.FilterOperatorIn},
	)

	count, err = retry.Do(ctx, s.policy, gRepo.Classify, func(ctx context.Context, _ int) (int, error) {
		return s.attempts.Count(ctx, filter)
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to count payment declines")

		return 0, fmt.Errorf("failed to count payment declines: %w", err)
	}

	return count, nil
}

func (s *serviceImpl) History(ctx context.Context, bookingID int64) (res []dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	events, err := s.events.GetAll(ctx, chronological(), byBooking(bookingID))
	if err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to get audit history")

		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}

	res = make([]dto.EventResponse, len(events))
	for i, event := range events {
		res[i].FromModel(event)
	}

	return res, nil
}

func (s *serviceImpl) PaymentAttempts(ctx context.Context, bookingID int64) (res []dto.PaymentAttemptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.PaymentAttempts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	attempts, err := s.attempts.GetAll(ctx, chronological(), byBooking(bookingID))
	if err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to get payment attempts")

		return nil, fmt.Errorf("failed to get payment attempts: %w", err)
	}

	res = make([]dto.PaymentAttemptResponse, len(attempts))
	for i, attempt := range attempts {
		res[i].FromModel(attempt)
	}

	return res, nil
}

func byBooking(bookingID int64) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldBookingRequestID, Value: bookingID, Operator: gDto.FilterOperatorEq})
}

func chronological() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}
