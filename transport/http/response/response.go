package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"tourbook/shared/constant"
	"tourbook/shared/failure"
	"tourbook/shared/logger"
)

type Data[T any] struct {
	Success       bool   `json:"success"`
	Data          *T     `json:"data,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

type Error struct {
	Success       bool    `json:"success"`
	Error         *string `json:"error,omitempty"`
	ShouldRetry   *bool   `json:"should_retry,omitempty"`
	CorrelationID string  `json:"correlation_id,omitempty"`
}

type Message struct {
	Success       bool    `json:"success"`
	Message       *string `json:"message,omitempty"`
	CorrelationID string  `json:"correlation_id,omitempty"`
}

// CorrelationID returns the id the correlation middleware put on the response.
func CorrelationID(writer http.ResponseWriter) string {
	return writer.Header().Get(constant.RequestHeaderRequestID)
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{
		Success:       code < http.StatusBadRequest,
		Message:       &message,
		CorrelationID: CorrelationID(writer),
	})
}

// WithJSON sends a response containing a JSON object under data
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{
		Success:       true,
		Data:          &jsonPayload,
		CorrelationID: CorrelationID(writer),
	})
}

// WithBody sends payload as the whole response body.
func WithBody(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithError sends a response with an error message and, for failures that
// carry one, the retry hint. Errors that are not a failure.Failure are logged
// and answered with a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.GetMessage(err, constant.ResponseErrorSystem)

	if errMsg == constant.ResponseErrorSystem {
		log.Error().Err(err).Str("correlation_id", CorrelationID(writer)).Msg("unhandled error")
	}

	response(writer, code, Error{
		Error:         &errMsg,
		ShouldRetry:   failure.GetShouldRetry(err),
		CorrelationID: CorrelationID(writer),
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
