package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/gateway"
	"tourbook/infras/otel"
	auditModel "tourbook/internal/domains/audit/model"
	auditService "tourbook/internal/domains/audit/service"
	"tourbook/internal/domains/payment/model"
	"tourbook/shared/constant"
	"tourbook/shared/retry"
)

type Payment interface {
	Charge(ctx context.Context, in model.ChargeInput) (model.Result, error)
}

type serviceImpl struct {
	gateway  gateway.Gateway
	audit    auditService.Logger
	policy   retry.Policy
	currency string
	otel     otel.Otel
}

func New(gw gateway.Gateway, audit auditService.Logger, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		gateway:  gw,
		audit:    audit,
		policy:   retry.FromConfig("payment", cfg.Payment.Retry),
		currency: cfg.Payment.Currency,
		otel:     otel,
	}
}

// Charge charges the booking's stored payment method once, retrying unknown
// outcomes under one idempotency key. Every gateway call is recorded.
func (s *serviceImpl) Charge(ctx context.Context, in model.ChargeInput) (res model.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Charge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelBookingIDAttributeKey, in.BookingID)

	if in.Amount <= 0 || in.PaymentMethodID == "" {
		return res, &model.Error{
			Kind: gateway.KindInvalidRequest,
			Err:  &gateway.Error{Kind: gateway.KindInvalidRequest, Message: "booking has no chargeable amount or payment method"},
		}
	}

	declines, err := s.audit.DefinitiveDeclines(ctx, in.BookingID)
	if err != nil {
		// without the decline count the key could name a new charge for a round
		// that may already have been paid
		log.Error().Err(err).Int64("booking_id", in.BookingID).Msg("failed to derive idempotency key")

		return res, &model.Error{Kind: gateway.KindTransient, Err: err}
	}

	key := model.IdempotencyKey(in.BookingID, declines+1)
	scope.SetAttribute("payment.idempotency_key", key)

	req := gateway.ChargeRequest{
		Amount:          in.Amount,
		Currency:        s.currencyOf(in),
		IdempotencyKey:  key,
		PaymentMethodID: in.PaymentMethodID,
		CustomerID:      in.CustomerID,
		Description:     "Tour booking request " + strconv.FormatInt(in.BookingID, 10),
		// every field here is fixed per booking: the provider refuses a key
		// reused with different parameters
		Metadata: map[string]string{
			"booking_request_id": strconv.FormatInt(in.BookingID, 10),
		},
	}

	var attempts int

	charge, err := retry.Do(ctx, s.policy, model.Classify, func(ctx context.Context, attempt int) (gateway.Charge, error) {
		attempts = attempt

		charge, err := s.gateway.Charge(ctx, req)
		s.record(ctx, req, in.BookingID, attempt, charge, err)

		return charge, err
	})
	if err != nil {
		kind := gateway.KindOf(err)

		log.Warn().
			Err(err).
			Int64("booking_id", in.BookingID).
			Str("admin_id", in.AdminID).
			Str("idempotency_key", key).
			Str("kind", string(kind)).
			Int("attempts", retry.Attempts(err)).
			Msg("charge failed")

		var rerr *retry.Error
		if !errors.As(err, &rerr) {
			return res, &model.Error{Kind: kind, Attempts: attempts, Err: err}
		}

		return res, &model.Error{Kind: kind, Attempts: rerr.Attempts, Err: rerr.Err}
	}

	log.Info().
		Int64("booking_id", in.BookingID).
		Str("admin_id", in.AdminID).
		Str("charge_id", charge.ID).
		Bool("replayed", charge.Replayed).
		Int("attempts", attempts).
		Msg("charge succeeded")

	return model.Result{
		ChargeID:       charge.ID,
		Attempts:       attempts,
		IdempotencyKey: key,
		Replayed:       charge.Replayed,
	}, nil
}

func (s *serviceImpl) record(ctx context.Context, req gateway.ChargeRequest, bookingID int64, attempt int, charge gateway.Charge, err error) {
	row := auditModel.PaymentAttempt{
		BookingRequestID: bookingID,
		Provider:         s.gateway.Name(),
		Amount:           req.Amount,
		Currency:         req.Currency,
		IdempotencyKey:   req.IdempotencyKey,
		Attempt:          attempt,
		Outcome:          auditModel.OutcomeSuccess,
	}

	switch {
	case err != nil:
		kind := string(gateway.KindOf(err))
		detail := err.Error()

		row.Outcome = auditModel.OutcomeFailed
		row.ErrorKind = &kind
		row.ErrorDetail = &detail
	case charge.Replayed:
		row.Outcome = auditModel.OutcomeReplayed
		row.ChargeID = &charge.ID
	default:
		row.ChargeID = &charge.ID
	}

	// the attempt context may already be spent by the time the call returns
	s.audit.RecordPaymentAttempt(context.WithoutCancel(ctx), row)
}

func (s *serviceImpl) currencyOf(in model.ChargeInput) string {
	if in.Currency != "" {
		return strings.ToLower(in.Currency)
	}

	return s.currency
}
