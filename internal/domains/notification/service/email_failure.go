package service

//go:generate go run go.uber.org/mock/mockgen -source=./email_failure.go -destination=../mocks/email_failure_mock.go -package=mocks -mock_names=EmailFailure=MockEmailFailureService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/infras/mailer"
	"tourbook/infras/otel"
	auditModel "tourbook/internal/domains/audit/model"
	auditService "tourbook/internal/domains/audit/service"
	"tourbook/internal/domains/notification/model"
	"tourbook/internal/domains/notification/model/dto"
	"tourbook/internal/domains/notification/repository"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	gRepo "tourbook/shared/repository"
	"tourbook/shared/retry"
	"tourbook/shared/timezone"
)

// EmailFailure is the manual follow-up queue of undelivered emails.
type EmailFailure interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.ListEmailFailuresResponse, error)
	Resend(ctx context.Context, id, adminID string) (dto.ResendResponse, error)
}

type emailFailureImpl struct {
	repo        repository.EmailFailure
	sender      mailer.Sender
	audit       auditService.Logger
	emailPolicy retry.Policy
	otel        otel.Otel
}

func NewEmailFailure(repo repository.EmailFailure, sender mailer.Sender, audit auditService.Logger, cfg *config.Config, otel otel.Otel) EmailFailure {
	return &emailFailureImpl{
		repo:        repo,
		sender:      sender,
		audit:       audit,
		emailPolicy: retry.FromConfig("email-resend", cfg.Email.Retry),
		otel:        otel,
	}
}

func (s *emailFailureImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.ListEmailFailuresResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emailFailure.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count email failures")

		return res, fmt.Errorf("failed to count email failures: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get email failures")

		return res, fmt.Errorf("failed to get email failures: %w", err)
	}

	res.FromModels(models, total, params)

	return res, nil
}

func (s *emailFailureImpl) Resend(ctx context.Context, id, adminID string) (res dto.ResendResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emailFailure.Resend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err := uuid.Parse(id); err != nil {
		return res, failure.BadRequestFromString("invalid email failure id") // nolint:wrapcheck
	}

	record, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get email failure")

		return res, fmt.Errorf("failed to get email failure: %w", err)
	}

	if record.ID == uuid.Nil {
		return res, failure.NotFound("Email failure not found") // nolint:wrapcheck
	}

	if record.Status != model.FailureStatusPending {
		return res, failure.InvalidState("Email was already resent") // nolint:wrapcheck
	}

	data := map[string]any{}
	if len(record.Data) > 0 {
		if err := json.Unmarshal(record.Data, &data); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to decode email snapshot")

			return res, fmt.Errorf("failed to decode email snapshot: %w", err)
		}
	}

	_, err = retry.Do(ctx, s.emailPolicy, mailer.Classify, func(ctx context.Context, _ int) (struct{}, error) {
		return struct{}{}, s.sender.SendTemplated(ctx, string(record.Kind), record.Recipients, data)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Int("attempts", retry.Attempts(err)).Msg("failed to resend email")

		return res, failure.InternalErrorFromString("Email delivery failed: " + errorMessage(err)) // nolint:wrapcheck
	}

	err = s.repo.MarkResent(ctx, id, adminID, timezone.Now())
	if errors.Is(err, gRepo.ErrPreconditionFailed) {
		return res, failure.InvalidState("Email was already resent") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("email resent but record not updated")

		return res, fmt.Errorf("failed to mark email failure resent: %w", err)
	}

	s.audit.Append(ctx, record.BookingRequestID, auditModel.EventEmailSent, map[string]any{
		"kind":             record.Kind,
		"recipients":       []string(record.Recipients),
		"resend":           true,
		"email_failure_id": id,
	}, adminID)

	return dto.ResendResponse{
		Success: true,
		ID:      id,
		Status:  string(model.FailureStatusResent),
		Message: "Email resent",
	}, nil
}
