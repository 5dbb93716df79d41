package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"maps"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/mailer"
	"tourbook/infras/otel"
	auditModel "tourbook/internal/domains/audit/model"
	auditService "tourbook/internal/domains/audit/service"
	"tourbook/internal/domains/notification/model"
	"tourbook/internal/domains/notification/repository"
	"tourbook/shared/constant"
	"tourbook/shared/logger"
	gModel "tourbook/shared/model"
	gRepo "tourbook/shared/repository"
	"tourbook/shared/retry"
	"tourbook/shared/timezone"
)

// Dispatcher sends notification emails. Delivery problems never reach the
// caller: Send reports false and leaves an EmailFailure behind for follow-up.
type Dispatcher interface {
	Send(ctx context.Context, n model.Notification) bool
	SendApprovalConfirmation(ctx context.Context, booking model.Booking, chargeID, actorID string) bool
	SendRejectionNotice(ctx context.Context, booking model.Booking, reason, actorID string) bool
	SendPaymentFailureNotice(ctx context.Context, booking model.Booking, actorID string) bool
}

type dispatcherImpl struct {
	sender      mailer.Sender
	failures    repository.EmailFailure
	audit       auditService.Logger
	emailPolicy retry.Policy
	storePolicy retry.Policy
	otel        otel.Otel
}

func NewDispatcher(sender mailer.Sender, failures repository.EmailFailure, audit auditService.Logger, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		sender:      sender,
		failures:    failures,
		audit:       audit,
		emailPolicy: retry.FromConfig("email", cfg.Email.Retry),
		storePolicy: retry.FromConfig("email-failure-store", cfg.Store.Retry),
		otel:        otel,
	}
}

func (d *dispatcherImpl) Send(ctx context.Context, n model.Notification) bool {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Send")
	defer scope.End()

	scope.SetAttribute(constant.OtelBookingIDAttributeKey, n.Booking.ID)
	scope.SetAttribute("email.kind", string(n.Kind))

	recipients := n.Recipients
	if len(recipients) == 0 && n.Kind.ToCustomer() && n.Booking.CustomerEmail != "" {
		recipients = []string{n.Booking.CustomerEmail}
	}

	data := n.Booking.TemplateData()
	maps.Copy(data, n.Data)

	_, err := retry.Do(ctx, d.emailPolicy, mailer.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, d.sender.SendTemplated(ctx, string(n.Kind), recipients, data)
	})
	if err == nil {
		d.audit.Append(ctx, n.Booking.ID, auditModel.EventEmailSent, map[string]any{
			"kind":       n.Kind,
			"recipients": recipients,
		}, n.ActorID)

		return true
	}

	scope.TraceError(err)

	attempts := retry.Attempts(err)

	log.Error().
		Err(err).
		Int64("booking_id", n.Booking.ID).
		Str("kind", string(n.Kind)).
		Strs("recipients", recipients).
		Int("attempts", attempts).
		Msg("failed to send email")

	d.recordFailure(ctx, n, recipients, data, attempts, err)

	d.audit.Append(ctx, n.Booking.ID, auditModel.EventEmailFailed, map[string]any{
		"kind":       n.Kind,
		"recipients": recipients,
		"attempts":   attempts,
		"error":      errorMessage(err),
	}, n.ActorID)

	return false
}

func (d *dispatcherImpl) recordFailure(ctx context.Context, n model.Notification, recipients []string, data map[string]any, attempts int, sendErr error) {
	snapshot, err := json.Marshal(data)
	if err != nil {
		snapshot = []byte("{}")
	}

	now := timezone.Now()
	record := model.EmailFailure{
		ID:               uuid.New(),
		BookingRequestID: n.Booking.ID,
		Kind:             n.Kind,
		Recipients:       recipients,
		CustomerName:     n.Booking.CustomerName,
		CustomerEmail:    n.Booking.CustomerEmail,
		TourType:         n.Booking.TourType,
		TourDate:         n.Booking.TourDate,
		Data:             snapshot,
		Attempts:         attempts,
		LastError:        errorMessage(sendErr),
		Status:           model.FailureStatusPending,
		Metadata:         gModel.Metadata{CreatedAt: now, UpdatedAt: now},
	}

	_, err = retry.Do(ctx, d.storePolicy, gRepo.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, d.failures.Insert(ctx, record)
	})
	if err != nil {
		// the log line is the only trace left of this email
		logger.Critical().
			Err(err).
			Str("email_failure_id", record.ID.String()).
			Int64("booking_id", record.BookingRequestID).
			Str("kind", string(record.Kind)).
			Strs("recipients", recipients).
			Str("customer_email", record.CustomerEmail).
			RawJSON("data", snapshot).
			Str("last_error", record.LastError).
			Msg("failed to record email failure")
	}
}

func (d *dispatcherImpl) SendApprovalConfirmation(ctx context.Context, booking model.Booking, chargeID, actorID string) bool {
	return d.Send(ctx, model.Notification{
		Kind:    model.KindApprovalConfirmation,
		Booking: booking,
		Data:    map[string]any{"ChargeID": chargeID},
		ActorID: actorID,
	})
}

func (d *dispatcherImpl) SendRejectionNotice(ctx context.Context, booking model.Booking, reason, actorID string) bool {
	return d.Send(ctx, model.Notification{
		Kind:    model.KindRejectionNotice,
		Booking: booking,
		Data:    map[string]any{"Reason": reason},
		ActorID: actorID,
	})
}

func (d *dispatcherImpl) SendPaymentFailureNotice(ctx context.Context, booking model.Booking, actorID string) bool {
	return d.Send(ctx, model.Notification{
		Kind:    model.KindPaymentFailureCustomer,
		Booking: booking,
		ActorID: actorID,
	})
}

func errorMessage(err error) string {
	var rerr *retry.Error
	if errors.As(err, &rerr) && rerr.Err != nil {
		return rerr.Err.Error()
	}

	return err.Error()
}
