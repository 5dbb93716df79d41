package model

import (
	"time"

	notificationModel "tourbook/internal/domains/notification/model"
	"tourbook/shared/constant"
	"tourbook/shared/model"
)

const (
	TableName  = "booking_requests"
	EntityName = "booking_request"

	FieldID              = "id"
	FieldStatus          = "status"
	FieldChargeID        = "charge_id"
	FieldPaidAmount      = "paid_amount"
	FieldRejectionReason = "rejection_reason"
	FieldAdminReviewedBy = "admin_reviewed_by"
	FieldAdminReviewedAt = "admin_reviewed_at"

	ArgExpectedStatus = "expected_status"
)

type Status string

const (
	StatusPendingConfirmation Status = "PENDING_CONFIRMATION"
	StatusConfirmed           Status = "CONFIRMED"
	StatusRejected            Status = "REJECTED"
)

// Terminal reports whether no transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

const DefaultRejectionReason = "No reason provided"

type BookingRequest struct {
	ID                int64      `db:"id"                  insert:"-"`
	TourType          string     `db:"tour_type"`
	TourDate          time.Time  `db:"tour_date"`
	TourTime          string     `db:"tour_time"`
	Adults            int        `db:"adults"`
	Children          int        `db:"children"`
	Infants           int        `db:"infants"`
	CustomerName      string     `db:"customer_name"`
	CustomerEmail     string     `db:"customer_email"`
	CustomerPhone     *string    `db:"customer_phone"`
	PaymentMethodID   string     `db:"payment_method_id"`
	PaymentCustomerID *string    `db:"payment_customer_id"`
	TotalAmount       int64      `db:"total_amount"`
	Currency          string     `db:"currency"`
	Status            Status     `db:"status"`
	ChargeID          *string    `db:"charge_id"`
	PaidAmount        *int64     `db:"paid_amount"`
	RejectionReason   *string    `db:"rejection_reason"`
	AdminReviewedBy   *string    `db:"admin_reviewed_by"`
	AdminReviewedAt   *time.Time `db:"admin_reviewed_at"`
	model.Metadata
}

// Snapshot is what the notification templates need from the booking.
func (b BookingRequest) Snapshot() notificationModel.Booking {
	return notificationModel.Booking{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		TourType:      b.TourType,
		TourDate:      b.TourDate.Format(constant.DateOnlyFormat),
		TourTime:      b.TourTime,
		Adults:        b.Adults,
		Children:      b.Children,
		Infants:       b.Infants,
		Amount:        b.TotalAmount,
		Currency:      b.Currency,
	}
}

// ReviewedBy reports whether the stored review is exactly the one made by
// adminID at at, i.e. a write whose acknowledgement was lost.
func (b BookingRequest) ReviewedBy(adminID string, at time.Time) bool {
	if b.AdminReviewedBy == nil || b.AdminReviewedAt == nil {
		return false
	}

	return *b.AdminReviewedBy == adminID && b.AdminReviewedAt.Equal(at.Truncate(time.Microsecond))
}

// ConfirmPatch is the write that moves a paid booking to CONFIRMED.
func ConfirmPatch(chargeID string, paidAmount int64, adminID string, at time.Time) map[string]any {
	return map[string]any{
		FieldStatus:              string(StatusConfirmed),
		FieldChargeID:            chargeID,
		FieldPaidAmount:          paidAmount,
		FieldAdminReviewedBy:     adminID,
		FieldAdminReviewedAt:     at,
		constant.FieldUpdatedAt: at,
	}
}

// RejectPatch is the write that moves a booking to REJECTED.
func RejectPatch(reason, adminID string, at time.Time) map[string]any {
	return map[string]any{
		FieldStatus:              string(StatusRejected),
		FieldRejectionReason:     reason,
		FieldAdminReviewedBy:     adminID,
		FieldAdminReviewedAt:     at,
		constant.FieldUpdatedAt: at,
	}
}
