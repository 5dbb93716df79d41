package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"tourbook/shared/model"
)

const (
	TableName  = "email_failures"
	EntityName = "email_failure"

	FieldID               = "id"
	FieldBookingRequestID = "booking_request_id"
	FieldStatus           = "status"
	FieldResolvedBy       = "resolved_by"
	FieldResolvedAt       = "resolved_at"
	FieldAttempts         = "attempts"
	FieldLastError        = "last_error"

	ArgExpectedStatus = "expected_status"
)

// Kind is the email template a notification renders.
type Kind string

const (
	KindApprovalConfirmation       Kind = "approval_confirmation"
	KindRejectionNotice            Kind = "rejection_notice"
	KindPaymentFailureCustomer     Kind = "payment_failure_customer"
	KindPaymentFailureAdmin        Kind = "payment_failure_admin"
	KindCriticalInconsistencyAdmin Kind = "critical_inconsistency_admin"
	KindDecisionNotRecordedAdmin   Kind = "decision_not_recorded_admin"
)

// ToCustomer reports whether the template is addressed to the customer.
func (k Kind) ToCustomer() bool {
	return k == KindApprovalConfirmation || k == KindRejectionNotice || k == KindPaymentFailureCustomer
}

type FailureStatus string

const (
	FailureStatusPending FailureStatus = "pending"
	FailureStatusResent  FailureStatus = "resent"
)

// EmailFailure is an email that exhausted its retries. It keeps everything a
// resend needs so the booking never has to be read again.
type EmailFailure struct {
	ID               uuid.UUID      `db:"id"`
	BookingRequestID int64          `db:"booking_request_id"`
	Kind             Kind           `db:"kind"`
	Recipients       pq.StringArray `db:"recipients"`
	CustomerName     string         `db:"customer_name"`
	CustomerEmail    string         `db:"customer_email"`
	TourType         string         `db:"tour_type"`
	TourDate         string         `db:"tour_date"`
	Data             types.JSONText `db:"data"`
	Attempts         int            `db:"attempts"`
	LastError        string         `db:"last_error"`
	Status           FailureStatus  `db:"status"`
	ResolvedBy       *string        `db:"resolved_by"`
	ResolvedAt       *time.Time     `db:"resolved_at"`
	model.Metadata
}

// Booking is the part of a booking request the templates show.
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	TourType      string
	TourDate      string
	TourTime      string
	Adults        int
	Children      int
	Infants       int
	Amount        int64
	Currency      string
}

func (b Booking) TemplateData() map[string]any {
	return map[string]any{
		"BookingID":     b.ID,
		"CustomerName":  b.CustomerName,
		"CustomerEmail": b.CustomerEmail,
		"TourType":      b.TourType,
		"TourDate":      b.TourDate,
		"TourTime":      b.TourTime,
		"Adults":        b.Adults,
		"Children":      b.Children,
		"Infants":       b.Infants,
		"Amount":        FormatAmount(b.Amount),
		"Currency":      b.Currency,
	}
}

// Detail carries what the admin emails add on top of the booking.
type Detail struct {
	Action      string
	AdminID     string
	Attempts    int
	ErrorKind   string
	ErrorDetail string
	ChargeID    string
}

func (d Detail) TemplateData() map[string]any {
	return map[string]any{
		"Action":      d.Action,
		"AdminID":     d.AdminID,
		"Attempts":    d.Attempts,
		"ErrorKind":   d.ErrorKind,
		"ErrorDetail": d.ErrorDetail,
		"ChargeID":    d.ChargeID,
	}
}

type Notification struct {
	Kind    Kind
	Booking Booking
	// Recipients defaults to the customer.
	Recipients []string
	Data       map[string]any
	ActorID    string
}

// FormatAmount renders minor units as a decimal with two places.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
