package service

//go:generate go run go.uber.org/mock/mockgen -source=./escalator.go -destination=../mocks/escalator_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/notification/model"
	"tourbook/shared/constant"
	"tourbook/shared/logger"
)

// Escalator alerts the operators' distribution list.
type Escalator interface {
	PaymentFailed(ctx context.Context, booking model.Booking, detail model.Detail) bool
	Critical(ctx context.Context, booking model.Booking, detail model.Detail) bool
	DecisionNotRecorded(ctx context.Context, booking model.Booking, detail model.Detail) bool
}

type escalatorImpl struct {
	dispatcher Dispatcher
	recipients []string
	otel       otel.Otel
}

func NewEscalator(dispatcher Dispatcher, cfg *config.Config, otel otel.Otel) Escalator {
	if len(cfg.Email.AdminRecipients) == 0 {
		log.Warn().Msg("No admin recipients configured, escalations will only be recorded as email failures")
	}

	return &escalatorImpl{
		dispatcher: dispatcher,
		recipients: cfg.Email.AdminRecipients,
		otel:       otel,
	}
}

func (e *escalatorImpl) PaymentFailed(ctx context.Context, booking model.Booking, detail model.Detail) bool {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.PaymentFailed")
	defer scope.End()

	log.Warn().
		Int64("booking_id", booking.ID).
		Str("admin_id", detail.AdminID).
		Str("error_kind", detail.ErrorKind).
		Int("attempts", detail.Attempts).
		Msg("escalating payment failure")

	return e.dispatcher.Send(ctx, e.notification(model.KindPaymentFailureAdmin, booking, detail))
}

// Critical is for a booking that was charged but could not be confirmed.
func (e *escalatorImpl) Critical(ctx context.Context, booking model.Booking, detail model.Detail) bool {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Critical")
	defer scope.End()

	logger.Critical().
		Int64("booking_id", booking.ID).
		Str("charge_id", detail.ChargeID).
		Int64("amount", booking.Amount).
		Str("currency", booking.Currency).
		Str("admin_id", detail.AdminID).
		Str("error", detail.ErrorDetail).
		Msg("booking charged but not confirmed, manual reconciliation required")

	return e.dispatcher.Send(ctx, e.notification(model.KindCriticalInconsistencyAdmin, booking, detail))
}

// DecisionNotRecorded is for an admin decision the store would not take. No
// money moved, the booking is still pending.
func (e *escalatorImpl) DecisionNotRecorded(ctx context.Context, booking model.Booking, detail model.Detail) bool {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.DecisionNotRecorded")
	defer scope.End()

	log.Error().
		Int64("booking_id", booking.ID).
		Str("action", detail.Action).
		Str("admin_id", detail.AdminID).
		Int("attempts", detail.Attempts).
		Str("error", detail.ErrorDetail).
		Msg("escalating decision the store did not record")

	return e.dispatcher.Send(ctx, e.notification(model.KindDecisionNotRecordedAdmin, booking, detail))
}

func (e *escalatorImpl) notification(kind model.Kind, booking model.Booking, detail model.Detail) model.Notification {
	return model.Notification{
		Kind:       kind,
		Booking:    booking,
		Recipients: e.recipients,
		Data:       detail.TemplateData(),
		ActorID:    detail.AdminID,
	}
}
