package bookingrequest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourbook/infras/otel"
	"tourbook/internal/domains/bookingrequest/model/dto"
	"tourbook/internal/domains/bookingrequest/service"
	"tourbook/shared/constant"
	"tourbook/shared/failure"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"
)

type Handler struct {
	service service.BookingRequest
	otel    otel.Otel
}

func New(service service.BookingRequest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking-requests", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetBookingRequest)
		routerGroup.Post("/{action}", handler.ProcessBookingRequest)
	})
}

// ProcessBookingRequest approves or rejects a pending booking request.
// @Summary Approve or reject a booking request
// @Description Approving charges the stored payment method and confirms the booking. Rejecting records the reason. Both notify the customer.
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param action path string true "approve or reject"
// @Param request body dto.ProcessRequest true "Process Booking Request"
// @Success 200 {object} dto.ProcessResponse
// @Failure 400 {object} response.Error "Invalid input, booking already processed or payment failed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error "Charged but not confirmed, operators alerted"
// @Router /v1/booking-requests/{action} [post]
// @Security BearerAuth
func (handler *Handler) ProcessBookingRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessBookingRequest")
	defer scope.End()

	req := dto.ProcessRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	cmd, err := req.ToCommand(chi.URLParam(request, constant.RequestParamAction))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Process(ctx, cmd)
	if err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Int64("booking_id", cmd.BookingID).
			Str("action", cmd.Action.Name()).
			Str("correlation_id", response.CorrelationID(writer)).
			Msg("failed to process booking request")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking request " + res.Status + " by admin " + cmd.AdminID)

	res.CorrelationID = response.CorrelationID(writer)
	response.WithBody(writer, http.StatusOK, res)
}

// GetBookingRequest returns a booking request with its audit history.
// @Summary Get booking request
// @Description Retrieve a booking request, its events and its payment attempts.
// @Tags BookingRequest
// @Produce json
// @Param id path int true "Booking request ID"
// @Success 200 {object} response.Data[dto.BookingRequestDetailResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking-requests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingRequest")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		err = failure.BadRequestFromString("id must be a positive integer")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
