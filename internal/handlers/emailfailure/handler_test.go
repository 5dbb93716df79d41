package emailfailure_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "tourbook/infras/otel/mocks"
	"tourbook/internal/domains/notification/mocks"
	"tourbook/internal/domains/notification/model/dto"
	"tourbook/internal/handlers/emailfailure"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
)

const failureID = "0b6c1f5e-8c1e-4e43-9d3c-1f1a2b3c4d5e"

func newServer(t *testing.T) (*mocks.MockEmailFailureService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockEmailFailureService(ctrl)

	handler := emailfailure.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func do(server http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var res map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &res)

	return rec, res
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "admin-7"))
}

func TestGetEmailFailures(t *testing.T) {
	t.Run("filters and paginates", func(t *testing.T) {
		svc, server := newServer(t)

		svc.EXPECT().
			List(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 5, SortBy: "created_at", SortDir: "DESC"}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.ListEmailFailuresResponse, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "status")
				assert.Contains(t, where, "booking_request_id")
				assert.Len(t, args, 2)

				return dto.ListEmailFailuresResponse{Items: []dto.EmailFailureResponse{{ID: failureID}}}, nil
			})

		rec, body := do(server, httptest.NewRequest(http.MethodGet, "/v1/email-failures?page=2&limit=5&status=pending&booking_request_id=42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
	})

	t.Run("invalid status", func(t *testing.T) {
		_, server := newServer(t)

		rec, _ := do(server, httptest.NewRequest(http.MethodGet, "/v1/email-failures?status=lost", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid booking id", func(t *testing.T) {
		_, server := newServer(t)

		rec, _ := do(server, httptest.NewRequest(http.MethodGet, "/v1/email-failures?booking_request_id=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResendEmailFailure(t *testing.T) {
	t.Run("resent", func(t *testing.T) {
		svc, server := newServer(t)

		svc.EXPECT().
			Resend(gomock.Any(), failureID, "admin-7").
			Return(dto.ResendResponse{Success: true, ID: failureID, Status: "resent"}, nil)

		rec, body := do(server, asAdmin(httptest.NewRequest(http.MethodPost, "/v1/email-failures/"+failureID+"/resend", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "resent", body["status"])
	})

	t.Run("already resent", func(t *testing.T) {
		svc, server := newServer(t)

		svc.EXPECT().
			Resend(gomock.Any(), failureID, "admin-7").
			Return(dto.ResendResponse{}, failure.InvalidState("Email was already resent"))

		rec, body := do(server, asAdmin(httptest.NewRequest(http.MethodPost, "/v1/email-failures/"+failureID+"/resend", nil)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email was already resent", body["error"])
	})

	t.Run("no authenticated admin", func(t *testing.T) {
		_, server := newServer(t)

		rec, _ := do(server, httptest.NewRequest(http.MethodPost, "/v1/email-failures/"+failureID+"/resend", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
