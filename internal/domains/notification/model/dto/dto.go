package dto

import (
	"encoding/json"
	"strconv"

	"tourbook/internal/domains/notification/model"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/timezone"
)

type ListEmailFailuresRequest struct {
	Status           string `json:"status"             validate:"omitempty,oneof=pending resent"`
	BookingRequestID int64  `json:"booking_request_id" validate:"omitempty,gt=0"`
}

// FromQuery reads the filters from query string values. Unparseable ids are
// left as -1 so validation rejects them.
func (r *ListEmailFailuresRequest) FromQuery(status, bookingRequestID string) {
	r.Status = status

	if bookingRequestID != "" {
		id, err := strconv.ParseInt(bookingRequestID, 10, 64)
		if err != nil {
			id = -1
		}

		r.BookingRequestID = id
	}
}

func (r *ListEmailFailuresRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if r.Status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: r.Status, Operator: gDto.FilterOperatorEq})
	}

	if r.BookingRequestID != 0 {
		filters = append(filters, gDto.Filter{Field: model.FieldBookingRequestID, Value: r.BookingRequestID, Operator: gDto.FilterOperatorEq})
	}

	return gDto.And(filters...)
}

type EmailFailureResponse struct {
	ID               string          `json:"id"`
	BookingRequestID int64           `json:"booking_request_id"`
	Kind             string          `json:"kind"`
	Recipients       []string        `json:"recipients"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	TourType         string          `json:"tour_type"`
	TourDate         string          `json:"tour_date"`
	Data             json.RawMessage `json:"data" swaggertype:"object"`
	Attempts         int             `json:"attempts"`
	LastError        string          `json:"last_error"`
	Status           string          `json:"status"`
	ResolvedBy       *string         `json:"resolved_by,omitempty"`
	ResolvedAt       *string         `json:"resolved_at,omitempty"`
	gDto.Metadata
}

func (r *EmailFailureResponse) FromModel(m model.EmailFailure) {
	r.ID = m.ID.String()
	r.BookingRequestID = m.BookingRequestID
	r.Kind = string(m.Kind)
	r.Recipients = []string(m.Recipients)
	r.CustomerName = m.CustomerName
	r.CustomerEmail = m.CustomerEmail
	r.TourType = m.TourType
	r.TourDate = m.TourDate
	r.Data = json.RawMessage(m.Data)
	r.Attempts = m.Attempts
	r.LastError = m.LastError
	r.Status = string(m.Status)
	r.ResolvedBy = m.ResolvedBy
	r.Metadata.FromModel(m.Metadata)

	if len(r.Data) == 0 {
		r.Data = json.RawMessage("{}")
	}

	if m.ResolvedAt != nil {
		at := timezone.Format(*m.ResolvedAt, constant.DateFormat)
		r.ResolvedAt = &at
	}
}

type ListEmailFailuresResponse struct {
	Items      []EmailFailureResponse `json:"items"`
	Pagination gDto.Pagination        `json:"pagination"`
}

func (r *ListEmailFailuresResponse) FromModels(models []model.EmailFailure, total int, params gDto.QueryParams) {
	r.Pagination = gDto.Pagination{
		Page:      params.Page,
		Limit:     params.Limit,
		Total:     total,
		TotalPage: shared.CalculateTotalPage(total, params.Limit),
	}

	r.Items = make([]EmailFailureResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}

type ResendResponse struct {
	Success       bool   `json:"success"`
	ID            string `json:"id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
