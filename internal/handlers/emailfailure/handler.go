package emailfailure

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourbook/infras/otel"
	"tourbook/internal/domains/notification/model"
	"tourbook/internal/domains/notification/model/dto"
	"tourbook/internal/domains/notification/service"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"
)

type Handler struct {
	service service.EmailFailure
	otel    otel.Otel
}

func New(service service.EmailFailure, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/email-failures", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEmailFailures)
		routerGroup.Post("/{id}/resend", handler.ResendEmailFailure)
	})
}

// GetEmailFailures lists undelivered emails.
// @Summary List email failures
// @Description Emails that could not be delivered after retries, for manual follow-up.
// @Tags EmailFailure
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, resent)"
// @Param booking_request_id query int false "Filter by booking request ID"
// @Success 200 {object} response.Data[dto.ListEmailFailuresResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/email-failures [get]
// @Security BearerAuth
func (handler *Handler) GetEmailFailures(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmailFailures")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	req := dto.ListEmailFailuresRequest{}
	req.FromQuery(request.URL.Query().Get(model.FieldStatus), request.URL.Query().Get(model.FieldBookingRequestID))

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.List(ctx, queryParams, req.ToFilter())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list email failures")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ResendEmailFailure sends an undelivered email again.
// @Summary Resend a failed email
// @Description Resends the email from its recorded snapshot and marks the record resent by the calling admin.
// @Tags EmailFailure
// @Produce json
// @Param id path string true "Email failure ID"
// @Success 200 {object} dto.ResendResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/email-failures/{id}/resend [post]
// @Security BearerAuth
func (handler *Handler) ResendEmailFailure(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResendEmailFailure")
	defer scope.End()

	adminID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || adminID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Resend(ctx, id, adminID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("email_failure_id", id).Msg("failed to resend email")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Email failure resent by admin " + adminID)

	res.CorrelationID = response.CorrelationID(writer)
	response.WithBody(writer, http.StatusOK, res)
}
