package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/bookingrequest/model"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

type BookingRequest interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetFromPrimary(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	// ConditionalUpdate applies patch only while the row still has the expected
	// status, in a single statement. It returns gRepo.ErrPreconditionFailed when
	// the row is missing or its status moved on.
	ConditionalUpdate(ctx context.Context, id int64, expected model.Status, patch map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingRequest]
}

func New(db *postgres.Connection, otel otel.Otel) BookingRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) ConditionalUpdate(ctx context.Context, id int64, expected model.Status, patch map[string]any) error {
	filter := gDto.And(
		gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
		gDto.Filter{ArgName: model.ArgExpectedStatus, Field: model.FieldStatus, Value: string(expected), Operator: gDto.FilterOperatorEq},
	)

	affected, err := r.Update(ctx, patch, filter)
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("booking request %d not in status %s: %w", id, expected, gRepo.ErrPreconditionFailed)
	}

	return nil
}
