package dto

import (
	"strings"

	auditDto "tourbook/internal/domains/audit/model/dto"
	"tourbook/internal/domains/bookingrequest/model"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"
)

type ProcessRequest struct {
	BookingID       int64   `json:"booking_id"       validate:"required,gt=0"`
	Action          string  `json:"action"           validate:"omitempty,oneof=approve reject"`
	AdminID         string  `json:"admin_id"         validate:"required,notblank,max=255"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=500"`
}

// ToCommand resolves the action from the path. An action in the body is
// optional but must agree with it.
func (r *ProcessRequest) ToCommand(pathAction string) (model.Command, error) {
	if r.Action != "" && !strings.EqualFold(r.Action, pathAction) {
		return model.Command{}, failure.BadRequestFromString("action in body does not match the path") // nolint:wrapcheck
	}

	action, err := model.ParseAction(pathAction, r.RejectionReason)
	if err != nil {
		return model.Command{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	return model.Command{
		BookingID: r.BookingID,
		AdminID:   strings.TrimSpace(r.AdminID),
		Action:    action,
	}, nil
}

type ProcessResponse struct {
	Success       bool   `json:"success"`
	BookingID     int64  `json:"booking_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

type BookingRequestResponse struct {
	ID              int64   `json:"id"`
	TourType        string  `json:"tour_type"`
	TourDate        string  `json:"tour_date"`
	TourTime        string  `json:"tour_time"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	Infants         int     `json:"infants"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	TotalAmount     int64   `json:"total_amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	ChargeID        *string `json:"charge_id,omitempty"`
	PaidAmount      *int64  `json:"paid_amount,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	AdminReviewedBy *string `json:"admin_reviewed_by,omitempty"`
	AdminReviewedAt *string `json:"admin_reviewed_at,omitempty"`
	gDto.Metadata
}

func (r *BookingRequestResponse) FromModel(m model.BookingRequest) {
	r.ID = m.ID
	r.TourType = m.TourType
	r.TourDate = m.TourDate.Format(constant.DateOnlyFormat)
	r.TourTime = m.TourTime
	r.Adults = m.Adults
	r.Children = m.Children
	r.Infants = m.Infants
	r.CustomerName = m.CustomerName
	r.CustomerEmail = m.CustomerEmail
	r.CustomerPhone = m.CustomerPhone
	r.TotalAmount = m.TotalAmount
	r.Currency = m.Currency
	r.Status = string(m.Status)
	r.ChargeID = m.ChargeID
	r.PaidAmount = m.PaidAmount
	r.RejectionReason = m.RejectionReason
	r.AdminReviewedBy = m.AdminReviewedBy
	r.Metadata.FromModel(m.Metadata)

	if m.AdminReviewedAt != nil {
		at := timezone.Format(*m.AdminReviewedAt, constant.DateFormat)
		r.AdminReviewedAt = &at
	}
}

type BookingRequestDetailResponse struct {
	BookingRequestResponse
	Events          []auditDto.EventResponse          `json:"events"`
	PaymentAttempts []auditDto.PaymentAttemptResponse `json:"payment_attempts"`
}
