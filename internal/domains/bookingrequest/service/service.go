package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=BookingRequest=MockBookingRequestService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/gateway"
	"tourbook/infras/otel"
	auditModel "tourbook/internal/domains/audit/model"
	auditService "tourbook/internal/domains/audit/service"
	"tourbook/internal/domains/bookingrequest/model"
	"tourbook/internal/domains/bookingrequest/model/dto"
	"tourbook/internal/domains/bookingrequest/repository"
	notificationModel "tourbook/internal/domains/notification/model"
	notificationService "tourbook/internal/domains/notification/service"
	paymentModel "tourbook/internal/domains/payment/model"
	paymentService "tourbook/internal/domains/payment/service"
	"tourbook/shared"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	"tourbook/shared/failure"
	gRepo "tourbook/shared/repository"
	"tourbook/shared/retry"
	"tourbook/shared/timezone"
)

const (
	messageNotFound         = "Booking not found"
	messageAlreadyProcessed = "Booking request was already processed"
	messageApproved         = "Booking request approved and payment captured"
	messageRejected         = "Booking request rejected"
	messageConfirmFailed    = "Payment was captured but the booking could not be confirmed. Operators have been alerted, do not approve again"
	messageChargeConflict   = "A charge for this booking may already exist with different details. Operators have been alerted, do not approve again"
)

type BookingRequest interface {
	// Process applies an admin decision to a pending booking request.
	Process(ctx context.Context, cmd model.Command) (dto.ProcessResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingRequestDetailResponse, error)
}

type serviceImpl struct {
	repo        repository.BookingRequest
	payment     paymentService.Payment
	audit       auditService.Logger
	dispatcher  notificationService.Dispatcher
	escalator   notificationService.Escalator
	cache       cache.RedisCache
	storePolicy retry.Policy
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.BookingRequest,
	payment paymentService.Payment,
	audit auditService.Logger,
	dispatcher notificationService.Dispatcher,
	escalator notificationService.Escalator,
	redisCache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) BookingRequest {
	return &serviceImpl{
		repo:        repo,
		payment:     payment,
		audit:       audit,
		dispatcher:  dispatcher,
		escalator:   escalator,
		cache:       redisCache,
		storePolicy: retry.FromConfig("booking-store", cfg.Store.Retry),
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Process(ctx context.Context, cmd model.Command) (res dto.ProcessResponse, err error) {
	// once started, a decision runs to completion even if the client goes away
	ctx = context.WithoutCancel(ctx)

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".bookingRequest.Process")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if cmd.Action == nil {
		return res, failure.BadRequestFromString("action is required") // nolint:wrapcheck
	}

	scope.SetAttribute(constant.OtelBookingIDAttributeKey, cmd.BookingID)
	scope.SetAttribute("booking.action", cmd.Action.Name())

	booking, err := s.load(ctx, cmd.BookingID)
	if err != nil {
		return res, err
	}

	if booking.ID == 0 {
		return res, failure.NotFound(messageNotFound) // nolint:wrapcheck
	}

	if booking.Status != model.StatusPendingConfirmation {
		log.Info().
			Int64("booking_id", booking.ID).
			Str("status", string(booking.Status)).
			Str("action", cmd.Action.Name()).
			Msg("decision on a booking that is not pending")

		return res, failure.InvalidState(fmt.Sprintf("Booking request is %s, only %s can be approved or rejected", booking.Status, model.StatusPendingConfirmation)) // nolint:wrapcheck
	}

	outcome, err := cmd.Action.Apply(ctx, s, booking, cmd.AdminID)

	// every path past this point appended events to the booking's history
	shared.InvalidateCaches(ctx, s.cache, s.cacheKey(booking.ID))

	if err != nil {
		return res, err
	}

	return dto.ProcessResponse{
		Success:   true,
		BookingID: booking.ID,
		Status:    string(outcome.Status),
		Message:   outcome.Message,
	}, nil
}

// Reject implements model.Transitioner.
func (s *serviceImpl) Reject(ctx context.Context, booking model.BookingRequest, adminID string, action model.Reject) (model.Outcome, error) {
	reason := action.ReasonOrDefault()
	at := reviewTime()

	err := s.transition(ctx, booking.ID, model.RejectPatch(reason, adminID, at))
	if err != nil && !s.ownWriteLanded(ctx, booking.ID, adminID, at, err) {
		if errors.Is(err, gRepo.ErrPreconditionFailed) {
			return model.Outcome{}, failure.InvalidState(messageAlreadyProcessed) // nolint:wrapcheck
		}

		log.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to reject booking request")

		s.escalator.DecisionNotRecorded(ctx, booking.Snapshot(), notificationModel.Detail{
			Action:      action.Name(),
			AdminID:     adminID,
			Attempts:    retry.Attempts(err),
			ErrorDetail: err.Error(),
		})

		return model.Outcome{}, fmt.Errorf("failed to reject booking request: %w", err)
	}

	s.audit.Append(ctx, booking.ID, auditModel.EventRejected, map[string]any{
		"admin_id":         adminID,
		"rejection_reason": reason,
	}, adminID)

	s.dispatcher.SendRejectionNotice(ctx, booking.Snapshot(), reason, adminID)

	return model.Outcome{Status: model.StatusRejected, Message: messageRejected}, nil
}

// Approve implements model.Transitioner.
func (s *serviceImpl) Approve(ctx context.Context, booking model.BookingRequest, adminID string) (model.Outcome, error) {
	in := paymentModel.ChargeInput{
		BookingID:       booking.ID,
		Amount:          booking.TotalAmount,
		Currency:        booking.Currency,
		PaymentMethodID: booking.PaymentMethodID,
		AdminID:         adminID,
	}
	if booking.PaymentCustomerID != nil {
		in.CustomerID = *booking.PaymentCustomerID
	}

	charge, err := s.payment.Charge(ctx, in)
	if err != nil {
		return s.paymentFailed(ctx, booking, adminID, err)
	}

	at := reviewTime()

	err = s.transition(ctx, booking.ID, model.ConfirmPatch(charge.ChargeID, booking.TotalAmount, adminID, at))
	if err != nil && !s.ownWriteLanded(ctx, booking.ID, adminID, at, err) {
		return s.confirmationFailed(ctx, booking, adminID, charge, err)
	}

	s.audit.Append(ctx, booking.ID, auditModel.EventApproved, map[string]any{
		"admin_id":        adminID,
		"charge_id":       charge.ChargeID,
		"paid_amount":     booking.TotalAmount,
		"attempts":        charge.Attempts,
		"idempotency_key": charge.IdempotencyKey,
		"replayed":        charge.Replayed,
	}, adminID)

	s.dispatcher.SendApprovalConfirmation(ctx, booking.Snapshot(), charge.ChargeID, adminID)

	return model.Outcome{Status: model.StatusConfirmed, Message: messageApproved}, nil
}

// paymentFailed leaves the booking pending so it can be approved again once
// the cause is fixed, and makes sure both the customer and operators know.
func (s *serviceImpl) paymentFailed(ctx context.Context, booking model.BookingRequest, adminID string, err error) (model.Outcome, error) {
	kind := gateway.KindOf(err)
	attempts := retry.Attempts(err)
	reason := err.Error()

	var perr *paymentModel.Error
	if errors.As(err, &perr) {
		kind = perr.Kind
		attempts = perr.Attempts
		reason = perr.Reason()
	}

	if kind == gateway.KindConflict {
		return s.chargeConflict(ctx, booking, adminID, attempts, reason)
	}

	log.Warn().
		Err(err).
		Int64("booking_id", booking.ID).
		Str("error_kind", string(kind)).
		Int("attempts", attempts).
		Msg("payment failed, booking stays pending")

	s.audit.Append(ctx, booking.ID, auditModel.EventPaymentFailed, map[string]any{
		"admin_id":   adminID,
		"attempts":   attempts,
		"error_kind": kind,
		"error":      reason,
	}, adminID)

	snapshot := booking.Snapshot()

	s.dispatcher.SendPaymentFailureNotice(ctx, snapshot, adminID)
	s.escalator.PaymentFailed(ctx, snapshot, notificationModel.Detail{
		AdminID:     adminID,
		Attempts:    attempts,
		ErrorKind:   string(kind),
		ErrorDetail: reason,
	})

	// a declined card is not retried automatically, but the admin may approve
	// again once the customer has updated the payment method
	return model.Outcome{}, failure.PaymentFailed("Payment failed: "+reason, true) // nolint:wrapcheck
}

// chargeConflict handles a charge key the provider already saw with other
// parameters. The earlier request may have gone through, so the customer is
// not told the payment failed and the round does not move on.
func (s *serviceImpl) chargeConflict(ctx context.Context, booking model.BookingRequest, adminID string, attempts int, reason string) (model.Outcome, error) {
	current, err := s.load(ctx, booking.ID)
	if err == nil && current.Status != model.StatusPendingConfirmation {
		// a concurrent decision got there first
		return model.Outcome{}, failure.InvalidState(messageAlreadyProcessed) // nolint:wrapcheck
	}

	log.Error().
		Int64("booking_id", booking.ID).
		Str("admin_id", adminID).
		Str("error", reason).
		Msg("charge key reused with different parameters, booking needs reconciliation")

	s.audit.Append(ctx, booking.ID, auditModel.EventPaymentFailed, map[string]any{
		"admin_id":   adminID,
		"attempts":   attempts,
		"error_kind": gateway.KindConflict,
		"error":      reason,
	}, adminID)

	s.escalator.PaymentFailed(ctx, booking.Snapshot(), notificationModel.Detail{
		AdminID:     adminID,
		Attempts:    attempts,
		ErrorKind:   string(gateway.KindConflict),
		ErrorDetail: reason,
	})

	return model.Outcome{}, failure.PaymentFailed(messageChargeConflict, false) // nolint:wrapcheck
}

// confirmationFailed handles a charge that went through while the booking
// could not be moved to CONFIRMED.
func (s *serviceImpl) confirmationFailed(ctx context.Context, booking model.BookingRequest, adminID string, charge paymentModel.Result, writeErr error) (model.Outcome, error) {
	if errors.Is(writeErr, gRepo.ErrPreconditionFailed) {
		current, err := s.load(ctx, booking.ID)
		if err == nil && current.Status == model.StatusConfirmed && current.ChargeID != nil && *current.ChargeID == charge.ChargeID {
			// a concurrent approval confirmed the booking with this same charge
			return model.Outcome{}, failure.InvalidState(messageAlreadyProcessed) // nolint:wrapcheck
		}
	}

	log.Error().
		Err(writeErr).
		Int64("booking_id", booking.ID).
		Str("charge_id", charge.ChargeID).
		Int("attempts", retry.Attempts(writeErr)).
		Msg("booking charged but not confirmed")

	s.audit.Append(ctx, booking.ID, auditModel.EventConfirmationFailed, map[string]any{
		"admin_id":    adminID,
		"charge_id":   charge.ChargeID,
		"paid_amount": booking.TotalAmount,
		"attempts":    retry.Attempts(writeErr),
		"error":       writeErr.Error(),
	}, adminID)

	s.escalator.Critical(ctx, booking.Snapshot(), notificationModel.Detail{
		AdminID:     adminID,
		Attempts:    retry.Attempts(writeErr),
		ErrorDetail: writeErr.Error(),
		ChargeID:    charge.ChargeID,
	})

	return model.Outcome{}, failure.InternalErrorFromString(messageConfirmFailed) // nolint:wrapcheck
}

// ownWriteLanded tells a retried write whose first acknowledgement was lost
// apart from a real precondition failure: the row then carries exactly our
// review.
func (s *serviceImpl) ownWriteLanded(ctx context.Context, id int64, adminID string, at time.Time, err error) bool {
	var rerr *retry.Error
	if !errors.Is(err, gRepo.ErrPreconditionFailed) || !errors.As(err, &rerr) || rerr.Attempts < 2 {
		return false
	}

	current, loadErr := s.load(ctx, id)
	if loadErr != nil {
		return false
	}

	return current.ReviewedBy(adminID, at)
}

func (s *serviceImpl) transition(ctx context.Context, id int64, patch map[string]any) error {
	_, err := retry.Do(ctx, s.storePolicy, gRepo.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, s.repo.ConditionalUpdate(ctx, id, model.StatusPendingConfirmation, patch)
	})

	return err
}

func (s *serviceImpl) load(ctx context.Context, id int64) (model.BookingRequest, error) {
	booking, err := retry.Do(ctx, s.storePolicy, gRepo.Classify, func(ctx context.Context, _ int) (model.BookingRequest, error) {
		return s.repo.GetFromPrimary(ctx, shared.FilterByID(id, model.FieldID))
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to load booking request")

		return booking, fmt.Errorf("failed to load booking request: %w", err)
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingRequestDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".bookingRequest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := s.cacheKey(id)
	if err = s.cache.Get(ctx, key, &res); err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking request")

		return res, fmt.Errorf("failed to get booking request: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound(messageNotFound) // nolint:wrapcheck
	}

	events, err := s.audit.History(ctx, id)
	if err != nil {
		return res, fmt.Errorf("failed to get booking request history: %w", err)
	}

	attempts, err := s.audit.PaymentAttempts(ctx, id)
	if err != nil {
		return res, fmt.Errorf("failed to get booking request payment attempts: %w", err)
	}

	res.FromModel(booking)
	res.Events = events
	res.PaymentAttempts = attempts

	if err := s.cache.Save(ctx, key, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache booking request")
	}

	return res, nil
}

func (s *serviceImpl) cacheKey(id int64) string {
	return shared.BuildCacheKey(s.cfg.App.Name, model.EntityName, id)
}

// reviewTime is the review timestamp at the precision the store keeps.
func reviewTime() time.Time {
	return timezone.Now().Truncate(time.Microsecond)
}
