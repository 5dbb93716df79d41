package repository_test

import (
	"github.com/google/uuid"

	"tourbook/internal/domains/notification/model"
)

func sampleFailure() model.EmailFailure {
	return model.EmailFailure{
		ID:               uuid.New(),
		BookingRequestID: 42,
		Kind:             model.KindRejectionNotice,
		Recipients:       []string{"ana@example.com"},
		CustomerName:     "Ana",
		CustomerEmail:    "ana@example.com",
		Data:             []byte(`{"Reason":"fully booked"}`),
		Attempts:         3,
		LastError:        "smtp 451: try again later",
		Status:           model.FailureStatusPending,
	}
}
