package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/notification/model"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

type EmailFailure interface {
	Insert(ctx context.Context, model model.EmailFailure) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EmailFailure, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EmailFailure, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// MarkResent moves a pending record to resent. It returns
	// gRepo.ErrPreconditionFailed when the record is no longer pending.
	MarkResent(ctx context.Context, id string, adminID string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.EmailFailure]
}

func New(db *postgres.Connection, otel otel.Otel) EmailFailure {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.EmailFailure](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) MarkResent(ctx context.Context, id string, adminID string, at time.Time) error {
	filter := gDto.And(
		gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
		gDto.Filter{ArgName: model.ArgExpectedStatus, Field: model.FieldStatus, Value: string(model.FailureStatusPending), Operator: gDto.FilterOperatorEq},
	)

	affected, err := r.Update(ctx, map[string]any{
		model.FieldStatus:        string(model.FailureStatusResent),
		model.FieldResolvedBy:    adminID,
		model.FieldResolvedAt:    at,
		constant.FieldUpdatedAt: at,
	}, filter)
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("email failure %s: %w", id, gRepo.ErrPreconditionFailed)
	}

	return nil
}
