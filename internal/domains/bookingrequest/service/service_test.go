package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/infras/gateway"
	auditModel "tourbook/internal/domains/audit/model"
	"tourbook/internal/domains/bookingrequest/model"
	notificationModel "tourbook/internal/domains/notification/model"
	"tourbook/shared/failure"
)

func declined(int) error {
	return &gateway.Error{Kind: gateway.KindCardDeclined, Code: "generic_decline", Message: "Your card was declined."}
}

func payload(t *testing.T, event auditModel.Event) map[string]any {
	t.Helper()

	var p map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &p))

	return p
}

func TestProcess_ApproveSuccess(t *testing.T) {
	w := newWorld(pending(42, 13000))

	res, err := w.svc.Process(context.Background(), approve(42))

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(42), res.BookingID)
	assert.Equal(t, "CONFIRMED", res.Status)

	row := w.store.row(42)
	assert.Equal(t, model.StatusConfirmed, row.Status)
	require.NotNil(t, row.PaidAmount)
	assert.Equal(t, int64(13000), *row.PaidAmount)
	require.NotNil(t, row.ChargeID)
	assert.Equal(t, "pi_1", *row.ChargeID)
	require.NotNil(t, row.AdminReviewedBy)
	assert.Equal(t, "admin-1", *row.AdminReviewedBy)
	assert.NotNil(t, row.AdminReviewedAt)

	approved := w.events.ofType(42, auditModel.EventApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, "pi_1", payload(t, approved[0])["charge_id"])
	assert.Equal(t, "admin-1", approved[0].ActorID)

	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindApprovalConfirmation)))
	assert.Len(t, w.events.ofType(42, auditModel.EventEmailSent), 1)

	success := w.attempts.withOutcome(42, auditModel.OutcomeSuccess)
	require.Len(t, success, 1)
	assert.Equal(t, "booking-request-42-charge-1", success[0].IdempotencyKey)
	assert.Equal(t, int64(13000), success[0].Amount)
}

func TestProcess_ApproveCardDeclined(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.fail = declined

	_, err := w.svc.Process(context.Background(), approve(43))

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	shouldRetry := failure.GetShouldRetry(err)
	require.NotNil(t, shouldRetry)
	assert.True(t, *shouldRetry)
	assert.Contains(t, err.Error(), "Your card was declined.")

	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(43).Status)
	assert.Nil(t, w.store.row(43).ChargeID)

	// a decline is final for the provider, so it is never retried automatically
	assert.Equal(t, 1, w.gateway.calls())

	failed := w.events.ofType(43, auditModel.EventPaymentFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "card_declined", payload(t, failed[0])["error_kind"])
	assert.EqualValues(t, 1, payload(t, failed[0])["attempts"])

	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindPaymentFailureCustomer)))
	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindPaymentFailureAdmin)))
	assert.Empty(t, w.events.ofType(43, auditModel.EventApproved))
}

func TestProcess_ApproveTransientExhaustion(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.fail = func(int) error {
		return &gateway.Error{Kind: gateway.KindTransient, Message: "upstream timeout"}
	}

	_, err := w.svc.Process(context.Background(), approve(43))

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	require.NotNil(t, failure.GetShouldRetry(err))
	assert.Equal(t, 3, w.gateway.calls())
	assert.Len(t, w.attempts.withOutcome(43, auditModel.OutcomeFailed), 3)
	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(43).Status)

	failed := w.events.ofType(43, auditModel.EventPaymentFailed)
	require.Len(t, failed, 1)
	assert.EqualValues(t, 3, payload(t, failed[0])["attempts"])
}

func TestProcess_ReapproveAfterDeclineUsesNewKey(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.fail = func(call int) error {
		if call == 1 {
			return declined(call)
		}

		return nil
	}

	_, err := w.svc.Process(context.Background(), approve(43))
	require.Error(t, err)

	res, err := w.svc.Process(context.Background(), approve(43))
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", res.Status)

	assert.Equal(t, []string{"booking-request-43-charge-1", "booking-request-43-charge-2"}, w.gateway.keys)
}

func TestProcess_ReapproveAfterUnknownOutcomeReusesKey(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.fail = func(call int) error {
		if call <= 3 {
			return &gateway.Error{Kind: gateway.KindTransient, Message: "upstream timeout"}
		}

		return nil
	}

	_, err := w.svc.Process(context.Background(), approve(43))
	require.Error(t, err)

	_, err = w.svc.Process(context.Background(), approve(43))
	require.NoError(t, err)

	for _, key := range w.gateway.keys {
		assert.Equal(t, "booking-request-43-charge-1", key)
	}
}

func TestProcess_SecondAdminReapprovesAfterUnknownOutcome(t *testing.T) {
	w := newWorld(pending(43, 9900))
	// the provider charges but every reply of the first approval is lost
	w.gateway.lostResponses = 3

	_, err := w.svc.Process(context.Background(), approveAs(43, "admin-1"))
	require.Error(t, err)
	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(43).Status)

	res, err := w.svc.Process(context.Background(), approveAs(43, "admin-2"))

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", res.Status)
	assert.Equal(t, 1, w.gateway.charges)

	for _, key := range w.gateway.keys {
		assert.Equal(t, "booking-request-43-charge-1", key)
	}

	row := w.store.row(43)
	require.NotNil(t, row.ChargeID)
	assert.Equal(t, "pi_1", *row.ChargeID)
	require.NotNil(t, row.AdminReviewedBy)
	assert.Equal(t, "admin-2", *row.AdminReviewedBy)
	assert.Len(t, w.attempts.withOutcome(43, auditModel.OutcomeReplayed), 1)
}

func TestProcess_ConcurrentApprovalsByDifferentAdminsChargeOnce(t *testing.T) {
	for range 20 {
		w := newWorld(pending(42, 13000))

		var (
			wg   sync.WaitGroup
			errs = make([]error, 2)
		)

		for i, adminID := range []string{"admin-1", "admin-2"} {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, errs[i] = w.svc.Process(context.Background(), approveAs(42, adminID))
			}()
		}

		wg.Wait()

		succeeded := 0

		for _, err := range errs {
			if err == nil {
				succeeded++

				continue
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Nil(t, failure.GetShouldRetry(err))
		}

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, w.gateway.charges)
		assert.Empty(t, w.events.ofType(42, auditModel.EventPaymentFailed))
		assert.Equal(t, 0, w.sender.attempts(string(notificationModel.KindPaymentFailureCustomer)))
		assert.Equal(t, 0, w.sender.attempts(string(notificationModel.KindPaymentFailureAdmin)))
	}
}

func TestProcess_KeyConflictWhileStillPending(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.lostResponses = 3

	_, err := w.svc.Process(context.Background(), approve(43))
	require.Error(t, err)

	// the customer switches cards while the first charge is unaccounted for
	row := w.store.row(43)
	row.PaymentMethodID = "pm_card_mastercard"
	w.store.set(row)

	_, err = w.svc.Process(context.Background(), approve(43))

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	shouldRetry := failure.GetShouldRetry(err)
	require.NotNil(t, shouldRetry)
	assert.False(t, *shouldRetry)

	assert.Equal(t, 1, w.gateway.charges)
	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(43).Status)

	failed := w.events.ofType(43, auditModel.EventPaymentFailed)
	require.Len(t, failed, 2)
	assert.Equal(t, "idempotency_conflict", payload(t, failed[1])["error_kind"])

	// only the first round told the customer, both rounds told operators
	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindPaymentFailureCustomer)))
	assert.Equal(t, 2, w.sender.attempts(string(notificationModel.KindPaymentFailureAdmin)))

	// the conflict does not open a new round
	_, err = w.svc.Process(context.Background(), approve(43))
	require.Error(t, err)
	assert.Equal(t, "booking-request-43-charge-1", w.gateway.keys[len(w.gateway.keys)-1])
	assert.Equal(t, 1, w.gateway.charges)
}

func TestProcess_KeyConflictAfterConcurrentDecision(t *testing.T) {
	w := newWorld(pending(43, 9900))
	w.gateway.fail = func(int) error {
		row := w.store.row(43)
		row.Status = model.StatusConfirmed
		w.store.set(row)

		return &gateway.Error{Kind: gateway.KindConflict, Message: "Keys for idempotent requests can only be used with the same parameters they were first used with."}
	}

	_, err := w.svc.Process(context.Background(), approve(43))

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Nil(t, failure.GetShouldRetry(err))
	assert.Equal(t, 1, w.gateway.calls())
	assert.Empty(t, w.events.ofType(43, auditModel.EventPaymentFailed))
	assert.Equal(t, 0, w.sender.total())
}

func TestProcess_Reject(t *testing.T) {
	w := newWorld(pending(44, 5000))
	reason := "fully booked"

	res, err := w.svc.Process(context.Background(), reject(44, &reason))

	require.NoError(t, err)
	assert.Equal(t, "REJECTED", res.Status)

	row := w.store.row(44)
	assert.Equal(t, model.StatusRejected, row.Status)
	require.NotNil(t, row.RejectionReason)
	assert.Equal(t, "fully booked", *row.RejectionReason)
	assert.Nil(t, row.ChargeID)

	rejected := w.events.ofType(44, auditModel.EventRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, "fully booked", payload(t, rejected[0])["rejection_reason"])

	assert.Equal(t, 0, w.gateway.calls())
	assert.Empty(t, w.attempts.of(44))
	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindRejectionNotice)))
}

func TestProcess_RejectWithoutReason(t *testing.T) {
	w := newWorld(pending(44, 5000))

	_, err := w.svc.Process(context.Background(), reject(44, nil))

	require.NoError(t, err)
	require.NotNil(t, w.store.row(44).RejectionReason)
	assert.Equal(t, model.DefaultRejectionReason, *w.store.row(44).RejectionReason)
}

func TestProcess_AlreadyConfirmed(t *testing.T) {
	confirmed := pending(45, 13000)
	confirmed.Status = model.StatusConfirmed
	w := newWorld(confirmed)

	_, err := w.svc.Process(context.Background(), approve(45))

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Nil(t, failure.GetShouldRetry(err))
	assert.Empty(t, w.attempts.of(45))
	assert.Equal(t, 0, w.gateway.calls())
	assert.Equal(t, 0, w.events.count(45))
	assert.Equal(t, 0, w.sender.total())
}

func TestProcess_NotFound(t *testing.T) {
	w := newWorld()

	_, err := w.svc.Process(context.Background(), approve(404))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, "Booking not found", err.Error())
}

func TestProcess_TerminalStatesAreImmutable(t *testing.T) {
	reason := "fully booked"

	for _, first := range []model.Command{approve(1), reject(1, &reason)} {
		for _, second := range []model.Command{approve(1), reject(1, nil)} {
			t.Run(first.Action.Name()+" then "+second.Action.Name(), func(t *testing.T) {
				w := newWorld(pending(1, 1000))

				_, err := w.svc.Process(context.Background(), first)
				require.NoError(t, err)

				before := w.store.row(1)
				events := w.events.count(1)
				mails := w.sender.total()
				calls := w.gateway.calls()

				_, err = w.svc.Process(context.Background(), second)

				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
				assert.Equal(t, before, w.store.row(1))
				assert.Equal(t, events, w.events.count(1))
				assert.Equal(t, mails, w.sender.total())
				assert.Equal(t, calls, w.gateway.calls())
			})
		}
	}
}

func TestProcess_ConcurrentApprovalsChargeOnce(t *testing.T) {
	for range 20 {
		w := newWorld(pending(42, 13000))

		var (
			wg   sync.WaitGroup
			errs = make([]error, 2)
		)

		for i := range 2 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, errs[i] = w.svc.Process(context.Background(), approve(42))
			}()
		}

		wg.Wait()

		succeeded := 0

		for _, err := range errs {
			if err == nil {
				succeeded++

				continue
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		}

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, w.gateway.charges)
		assert.Equal(t, model.StatusConfirmed, w.store.row(42).Status)
		assert.Len(t, w.attempts.withOutcome(42, auditModel.OutcomeSuccess), 1)
		assert.Len(t, w.events.ofType(42, auditModel.EventApproved), 1)
		assert.Empty(t, w.events.ofType(42, auditModel.EventConfirmationFailed))
		assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindApprovalConfirmation)))
	}
}

func TestProcess_ConfirmedAlwaysHasOneSuccessfulCharge(t *testing.T) {
	outcomes := map[string]func(int) error{
		"clean": nil,
		"flaky": func(call int) error {
			if call%2 == 1 {
				return &gateway.Error{Kind: gateway.KindTransient, Message: "timeout"}
			}

			return nil
		},
	}

	for name, fail := range outcomes {
		t.Run(name, func(t *testing.T) {
			w := newWorld(pending(7, 2500))
			w.gateway.fail = fail

			_, err := w.svc.Process(context.Background(), approve(7))
			require.NoError(t, err)

			row := w.store.row(7)
			require.Equal(t, model.StatusConfirmed, row.Status)
			require.NotNil(t, row.ChargeID)

			success := w.attempts.withOutcome(7, auditModel.OutcomeSuccess)
			require.Len(t, success, 1)
			assert.Equal(t, *row.ChargeID, *success[0].ChargeID)
		})
	}
}

func TestProcess_EmailOutageDoesNotBlockApproval(t *testing.T) {
	w := newWorld(pending(42, 13000))
	w.sender.down = true

	res, err := w.svc.Process(context.Background(), approve(42))

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", res.Status)
	assert.Equal(t, model.StatusConfirmed, w.store.row(42).Status)
	assert.Equal(t, 3, w.sender.attempts(string(notificationModel.KindApprovalConfirmation)))
	assert.Equal(t, []notificationModel.Kind{notificationModel.KindApprovalConfirmation}, w.failures.kinds())
	assert.Len(t, w.events.ofType(42, auditModel.EventEmailFailed), 1)
}

func TestProcess_EmailOutageDuringRejection(t *testing.T) {
	w := newWorld(pending(44, 5000))
	w.sender.down = true

	_, err := w.svc.Process(context.Background(), reject(44, nil))

	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, w.store.row(44).Status)
	assert.Equal(t, []notificationModel.Kind{notificationModel.KindRejectionNotice}, w.failures.kinds())
}

func TestProcess_StoreFailureAfterChargeIsCritical(t *testing.T) {
	w := newWorld(pending(42, 13000))
	w.store.updateErr = errors.New("connection refused")

	_, err := w.svc.Process(context.Background(), approve(42))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	// the write was retried before escalating
	assert.Equal(t, 3, w.store.updates)
	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(42).Status)
	assert.Equal(t, 1, w.gateway.charges)

	failed := w.events.ofType(42, auditModel.EventConfirmationFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "pi_1", payload(t, failed[0])["charge_id"])
	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindCriticalInconsistencyAdmin)))
	assert.Empty(t, w.events.ofType(42, auditModel.EventApproved))
	assert.Equal(t, 0, w.sender.attempts(string(notificationModel.KindApprovalConfirmation)))
}

func TestProcess_StoreFailureOnRejectionIsEscalated(t *testing.T) {
	w := newWorld(pending(44, 5000))
	w.store.updateErr = errors.New("connection refused")
	reason := "fully booked"

	_, err := w.svc.Process(context.Background(), reject(44, &reason))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, 3, w.store.updates)
	assert.Equal(t, model.StatusPendingConfirmation, w.store.row(44).Status)
	assert.Equal(t, 0, w.gateway.calls())

	assert.Equal(t, 1, w.sender.attempts(string(notificationModel.KindDecisionNotRecordedAdmin)))
	assert.Equal(t, 0, w.sender.attempts(string(notificationModel.KindCriticalInconsistencyAdmin)))
	assert.Equal(t, 0, w.sender.attempts(string(notificationModel.KindRejectionNotice)))
	assert.Empty(t, w.events.ofType(44, auditModel.EventRejected))
}

func TestProcess_LostWriteAcknowledgementIsNotAnInconsistency(t *testing.T) {
	w := newWorld(pending(42, 13000))
	w.store.lostAcks = 1

	res, err := w.svc.Process(context.Background(), approve(42))

	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", res.Status)
	assert.Len(t, w.events.ofType(42, auditModel.EventApproved), 1)
	assert.Empty(t, w.events.ofType(42, auditModel.EventConfirmationFailed))
}

func TestProcess_MissingAction(t *testing.T) {
	w := newWorld(pending(42, 13000))

	_, err := w.svc.Process(context.Background(), model.Command{BookingID: 42, AdminID: "admin-1"})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGet(t *testing.T) {
	w := newWorld(pending(42, 13000))

	_, err := w.svc.Process(context.Background(), approve(42))
	require.NoError(t, err)

	detail, err := w.svc.Get(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.ID)
	assert.Equal(t, "CONFIRMED", detail.Status)
	assert.Equal(t, "2026-11-02", detail.TourDate)
	assert.NotEmpty(t, detail.Events)
	require.Len(t, detail.PaymentAttempts, 1)
	assert.Equal(t, "success", detail.PaymentAttempts[0].Outcome)

	cached, err := w.svc.Get(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, detail.ID, cached.ID)
	assert.Equal(t, len(detail.Events), len(cached.Events))
}

func TestGet_NotFound(t *testing.T) {
	w := newWorld()

	_, err := w.svc.Get(context.Background(), 404)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
