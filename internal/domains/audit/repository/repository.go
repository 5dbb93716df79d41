package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/audit/model"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

// Event stores the audit log. It has no update or delete on purpose.
type Event interface {
	Insert(ctx context.Context, model model.Event) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Event, error)
}

// PaymentAttempt stores the append-only log of payment provider calls.
type PaymentAttempt interface {
	Insert(ctx context.Context, model model.PaymentAttempt) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PaymentAttempt, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type eventRepository struct {
	gRepo.Repository[model.Event]
}

func NewEvent(db *postgres.Connection, otel otel.Otel) Event {
	return &eventRepository{
		Repository: gRepo.NewRepository[model.Event](model.EventEntityName, model.EventTableName, model.FieldID, db, otel),
	}
}

type paymentAttemptRepository struct {
	gRepo.Repository[model.PaymentAttempt]
}

func NewPaymentAttempt(db *postgres.Connection, otel otel.Otel) PaymentAttempt {
	return &paymentAttemptRepository{
		Repository: gRepo.NewRepository[model.PaymentAttempt](model.AttemptEntityName, model.AttemptTableName, model.FieldID, db, otel),
	}
}
