package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tourbook/config"
	"tourbook/infras/gateway"
	"tourbook/infras/kafka"
	"tourbook/infras/mailer"
	otelMocks "tourbook/infras/otel/mocks"
	auditModel "tourbook/internal/domains/audit/model"
	auditService "tourbook/internal/domains/audit/service"
	"tourbook/internal/domains/bookingrequest/model"
	"tourbook/internal/domains/bookingrequest/service"
	notificationModel "tourbook/internal/domains/notification/model"
	notificationService "tourbook/internal/domains/notification/service"
	paymentService "tourbook/internal/domains/payment/service"
	"tourbook/shared/cache"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

func fastRetry() config.Retry {
	return config.Retry{
		MaxAttempts:           3,
		InitialIntervalMillis: 1,
		MaxIntervalMillis:     2,
		Multiplier:            2,
		AttemptTimeoutSeconds: 1,
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "tourbook"
	cfg.Cache.TTL = 60
	cfg.Payment.Currency = "usd"
	cfg.Payment.Retry = fastRetry()
	cfg.Store.Retry = fastRetry()
	cfg.Email.Retry = fastRetry()
	cfg.Email.AdminRecipients = []string{"ops@example.com"}
	cfg.Kafka.Topics.BookingRequestEvents = "booking-request-events"

	return cfg
}

func filterID(filter gDto.FilterGroup, arg string) int64 {
	_, args := filter.GetWhereClause()
	id, _ := args[arg].(int64)

	return id
}

// fakeStore holds booking rows and applies conditional updates atomically.
type fakeStore struct {
	mu   sync.Mutex
	rows map[int64]model.BookingRequest

	// updateErr fails every conditional update.
	updateErr error
	// lostAcks commits the next n updates but reports a dropped connection.
	lostAcks int
	updates  int
}

func newFakeStore(rows ...model.BookingRequest) *fakeStore {
	s := &fakeStore{rows: map[int64]model.BookingRequest{}}
	for _, row := range rows {
		s.rows[row.ID] = row
	}

	return s
}

func (s *fakeStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.BookingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rows[filterID(filter, model.FieldID)], nil
}

func (s *fakeStore) GetFromPrimary(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error) {
	return s.Get(ctx, filter, columns...)
}

func (s *fakeStore) ConditionalUpdate(_ context.Context, id int64, expected model.Status, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates++

	if s.updateErr != nil {
		return s.updateErr
	}

	row, ok := s.rows[id]
	if !ok || row.Status != expected {
		return fmt.Errorf("booking request %d: %w", id, gRepo.ErrPreconditionFailed)
	}

	for field, value := range patch {
		switch field {
		case model.FieldStatus:
			row.Status = model.Status(value.(string))
		case model.FieldChargeID:
			v := value.(string)
			row.ChargeID = &v
		case model.FieldPaidAmount:
			v := value.(int64)
			row.PaidAmount = &v
		case model.FieldRejectionReason:
			v := value.(string)
			row.RejectionReason = &v
		case model.FieldAdminReviewedBy:
			v := value.(string)
			row.AdminReviewedBy = &v
		case model.FieldAdminReviewedAt:
			v := value.(time.Time)
			row.AdminReviewedAt = &v
		case "updated_at":
			row.UpdatedAt = value.(time.Time)
		}
	}

	s.rows[id] = row

	if s.lostAcks > 0 {
		s.lostAcks--

		return errors.New("read tcp: connection reset by peer")
	}

	return nil
}

func (s *fakeStore) set(row model.BookingRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[row.ID] = row
}

func (s *fakeStore) row(id int64) model.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rows[id]
}

// fakeGateway behaves like a provider with idempotency keys: a key that
// already produced a charge replays it instead of charging again, and a key
// reused with other parameters is refused.
type fakeGateway struct {
	mu       sync.Mutex
	byKey    map[string]gateway.Charge
	paramsOf map[string]string
	keys     []string
	charges  int
	// fail decides the outcome of call n (1-based) before any charge happens.
	fail func(call int) error
	// lostResponses charges on the next n calls but times out the reply.
	lostResponses int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{byKey: map[string]gateway.Charge{}, paramsOf: map[string]string{}}
}

func chargeParams(req gateway.ChargeRequest) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%v", req.Amount, req.Currency, req.PaymentMethodID, req.CustomerID, req.Description, req.Metadata)
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) Charge(_ context.Context, req gateway.ChargeRequest) (gateway.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.keys = append(g.keys, req.IdempotencyKey)

	if g.fail != nil {
		if err := g.fail(len(g.keys)); err != nil {
			return gateway.Charge{}, err
		}
	}

	params := chargeParams(req)
	if seen, ok := g.paramsOf[req.IdempotencyKey]; ok && seen != params {
		return gateway.Charge{}, &gateway.Error{
			Kind:       gateway.KindConflict,
			StatusCode: 400,
			Message:    "Keys for idempotent requests can only be used with the same parameters they were first used with.",
		}
	}

	g.paramsOf[req.IdempotencyKey] = params

	charge, ok := g.byKey[req.IdempotencyKey]
	if ok {
		charge.Replayed = true
	} else {
		g.charges++
		charge = gateway.Charge{ID: fmt.Sprintf("pi_%d", g.charges), Status: "succeeded"}
		g.byKey[req.IdempotencyKey] = charge
	}

	if g.lostResponses > 0 {
		g.lostResponses--

		return gateway.Charge{}, &gateway.Error{Kind: gateway.KindTransient, Message: "request to payment provider timed out"}
	}

	return charge, nil
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.keys)
}

type fakeEvents struct {
	mu     sync.Mutex
	events []auditModel.Event
}

func (e *fakeEvents) Insert(_ context.Context, event auditModel.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)

	return nil
}

func (e *fakeEvents) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]auditModel.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := filterID(filter, auditModel.FieldBookingRequestID)
	res := []auditModel.Event{}

	for _, event := range e.events {
		if event.BookingRequestID == id {
			res = append(res, event)
		}
	}

	return res, nil
}

func (e *fakeEvents) ofType(bookingID int64, eventType auditModel.EventType) []auditModel.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := []auditModel.Event{}

	for _, event := range e.events {
		if event.BookingRequestID == bookingID && event.EventType == eventType {
			res = append(res, event)
		}
	}

	return res
}

func (e *fakeEvents) count(bookingID int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0

	for _, event := range e.events {
		if event.BookingRequestID == bookingID {
			n++
		}
	}

	return n
}

type fakeAttempts struct {
	mu       sync.Mutex
	attempts []auditModel.PaymentAttempt
}

func (a *fakeAttempts) Insert(_ context.Context, attempt auditModel.PaymentAttempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.attempts = append(a.attempts, attempt)

	return nil
}

func (a *fakeAttempts) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]auditModel.PaymentAttempt, error) {
	return a.of(filterID(filter, auditModel.FieldBookingRequestID)), nil
}

// Count only answers the definitive decline query the payment service asks.
func (a *fakeAttempts) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	n := 0

	for _, attempt := range a.of(filterID(filter, auditModel.FieldBookingRequestID)) {
		if attempt.Outcome == auditModel.OutcomeFailed && attempt.ErrorKind != nil && gateway.Kind(*attempt.ErrorKind).Definitive() {
			n++
		}
	}

	return n, nil
}

func (a *fakeAttempts) of(bookingID int64) []auditModel.PaymentAttempt {
	a.mu.Lock()
	defer a.mu.Unlock()

	res := []auditModel.PaymentAttempt{}

	for _, attempt := range a.attempts {
		if attempt.BookingRequestID == bookingID {
			res = append(res, attempt)
		}
	}

	return res
}

func (a *fakeAttempts) withOutcome(bookingID int64, outcome auditModel.AttemptOutcome) []auditModel.PaymentAttempt {
	res := []auditModel.PaymentAttempt{}

	for _, attempt := range a.of(bookingID) {
		if attempt.Outcome == outcome {
			res = append(res, attempt)
		}
	}

	return res
}

type sentMail struct {
	templateID string
	recipients []string
}

// fakeSender is an SMTP relay that is either up or down.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	down bool
}

func (m *fakeSender) SendTemplated(_ context.Context, templateID string, recipients []string, _ map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sentMail{templateID: templateID, recipients: recipients})

	if m.down {
		return &mailer.DeliveryError{Code: 421, Message: "service not available", Temporary: true}
	}

	return nil
}

func (m *fakeSender) attempts(templateID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0

	for _, mail := range m.sent {
		if mail.templateID == templateID {
			n++
		}
	}

	return n
}

func (m *fakeSender) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sent)
}

type fakeFailures struct {
	mu      sync.Mutex
	records []notificationModel.EmailFailure
}

func (f *fakeFailures) Insert(_ context.Context, record notificationModel.EmailFailure) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records = append(f.records, record)

	return nil
}

func (f *fakeFailures) Get(context.Context, gDto.FilterGroup, ...string) (notificationModel.EmailFailure, error) {
	return notificationModel.EmailFailure{}, nil
}

func (f *fakeFailures) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]notificationModel.EmailFailure, error) {
	return nil, nil
}

func (f *fakeFailures) Count(context.Context, gDto.FilterGroup) (int, error) {
	return 0, nil
}

func (f *fakeFailures) MarkResent(context.Context, string, string, time.Time) error {
	return nil
}

func (f *fakeFailures) kinds() []notificationModel.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds := []notificationModel.Kind{}
	for _, record := range f.records {
		kinds = append(kinds, record.Kind)
	}

	return kinds
}

type fakeKafka struct{}

func (fakeKafka) SendMessages(context.Context, string, ...kafka.Message) error { return nil }

func (fakeKafka) Close() error { return nil }

// fakeCache is a goroutine safe in-memory cache.RedisCache.
type fakeCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (c *fakeCache) Save(_ context.Context, key string, value any, _ int) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = body

	return nil
}

func (c *fakeCache) Get(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, ok := c.values[key]
	if !ok {
		return fmt.Errorf("cache miss: %w", cache.Nil)
	}

	return json.Unmarshal(body, value)
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)

	return nil
}

func (c *fakeCache) Incr(context.Context, string, int) (int64, error) {
	return 1, nil
}

// world wires the real workflow services to in-memory collaborators.
type world struct {
	store    *fakeStore
	gateway  *fakeGateway
	events   *fakeEvents
	attempts *fakeAttempts
	sender   *fakeSender
	failures *fakeFailures
	cache    *fakeCache
	svc      service.BookingRequest
}

func newWorld(rows ...model.BookingRequest) *world {
	cfg := testConfig()
	otl := otelMocks.NewOtel()

	w := &world{
		store:    newFakeStore(rows...),
		gateway:  newFakeGateway(),
		events:   &fakeEvents{},
		attempts: &fakeAttempts{},
		sender:   &fakeSender{},
		failures: &fakeFailures{},
		cache:    newFakeCache(),
	}

	audit := auditService.New(w.events, w.attempts, fakeKafka{}, cfg, otl)
	payment := paymentService.New(w.gateway, audit, cfg, otl)
	dispatcher := notificationService.NewDispatcher(w.sender, w.failures, audit, cfg, otl)
	escalator := notificationService.NewEscalator(dispatcher, cfg, otl)

	w.svc = service.New(w.store, payment, audit, dispatcher, escalator, w.cache, cfg, otl)

	return w
}

func pending(id int64, amount int64) model.BookingRequest {
	return model.BookingRequest{
		ID:              id,
		TourType:        "Sunset cruise",
		TourDate:        time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		TourTime:        "17:30",
		Adults:          2,
		Children:        1,
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		PaymentMethodID: "pm_card_visa",
		TotalAmount:     amount,
		Currency:        "usd",
		Status:          model.StatusPendingConfirmation,
	}
}

func approve(id int64) model.Command {
	return model.Command{BookingID: id, AdminID: "admin-1", Action: model.Approve{}}
}

func approveAs(id int64, adminID string) model.Command {
	return model.Command{BookingID: id, AdminID: adminID, Action: model.Approve{}}
}

func reject(id int64, reason *string) model.Command {
	return model.Command{BookingID: id, AdminID: "admin-1", Action: model.Reject{Reason: reason}}
}
