package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/shared/failure"
	"tourbook/shared/validator"
)

type decisionPayload struct {
	BookingID int64  `json:"booking_id" validate:"gt=0"`
	Action    string `json:"action"     validate:"required,oneof=approve reject"`
	AdminID   string `json:"admin_id"   validate:"required,notblank"`
	Reason    string `json:"rejection_reason" validate:"max=20"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        decisionPayload
		expectedMsg string
	}{
		{
			name: "valid",
			data: decisionPayload{BookingID: 42, Action: "approve", AdminID: "admin-1"},
		},
		{
			name:        "zero booking id",
			data:        decisionPayload{Action: "approve", AdminID: "admin-1"},
			expectedMsg: "booking_id must be greater than 0",
		},
		{
			name:        "unknown action",
			data:        decisionPayload{BookingID: 42, Action: "cancel", AdminID: "admin-1"},
			expectedMsg: "action must be one of approve reject",
		},
		{
			name:        "blank admin",
			data:        decisionPayload{BookingID: 42, Action: "reject", AdminID: "   "},
			expectedMsg: "admin_id must not be blank",
		},
		{
			name:        "missing admin",
			data:        decisionPayload{BookingID: 42, Action: "reject"},
			expectedMsg: "admin_id is required",
		},
		{
			name:        "reason too long",
			data:        decisionPayload{BookingID: 42, Action: "reject", AdminID: "a", Reason: strings.Repeat("x", 21)},
			expectedMsg: "rejection_reason must be less than or equal to 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectedMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("approve", "oneof=approve reject"))
	assert.Error(t, validator.ValidateVar("cancel", "oneof=approve reject"))
	assert.NoError(t, validator.ValidateVar(0, "empty"))
	assert.Error(t, validator.ValidateVar(3, "empty"))
	assert.Error(t, validator.ValidateVar("not-a-uuid", "uuid"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{name: "valid body", body: `{"booking_id":42,"action":"approve","admin_id":"admin-1"}`},
		{name: "failed validation", body: `{"booking_id":-1,"action":"approve","admin_id":"admin-1"}`, expectError: true},
		{name: "malformed body", body: `{"booking_id":`, expectError: true},
		{name: "empty object", body: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data decisionPayload
			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.expectError {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(42), data.BookingID)
		})
	}
}
