package submit_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	commitRepo "github.com/m04kA/SMC-RentalWizard/internal/infra/storage/commitlog"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
	"github.com/m04kA/SMC-RentalWizard/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSessionStore struct {
	sessions map[string]*domain.WizardSession
}

func newFakeSessionStore(sessions ...*domain.WizardSession) *fakeSessionStore {
	store := &fakeSessionStore{sessions: make(map[string]*domain.WizardSession)}
	for _, sess := range sessions {
		store.sessions[sess.ID] = sess
	}
	return store
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*domain.WizardSession, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sessionStore.ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *fakeSessionStore) SaveExisting(_ context.Context, sess *domain.WizardSession) error {
	if _, ok := s.sessions[sess.ID]; !ok {
		return sessionStore.ErrSessionNotFound
	}
	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

type fakeGateway struct {
	calls int
	err   error
}

func (g *fakeGateway) Process(_ context.Context, req *paymentgw.Request) (*domain.PaymentOutcome, error) {
	g.calls++
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if g.err != nil {
		return nil, g.err
	}
	return &domain.PaymentOutcome{
		Method:        req.Method,
		TransactionID: "SIM-test-tx",
		Amount:        req.Amount,
		Currency:      req.Currency,
	}, nil
}

type fakeRentalClient struct {
	createCalls int
	getCalls    int
	createErr   error
	reservation *rentalapi.Reservation

	lastIdempotencyKey string
	lastRequest        *rentalapi.CreateReservationRequest
}

func (c *fakeRentalClient) CreateReservation(_ context.Context, _ string, idempotencyKey string, req *rentalapi.CreateReservationRequest) (*rentalapi.Reservation, error) {
	c.createCalls++
	c.lastIdempotencyKey = idempotencyKey
	c.lastRequest = req
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.reservation, nil
}

func (c *fakeRentalClient) GetReservation(_ context.Context, _ string) (*rentalapi.Reservation, error) {
	c.getCalls++
	return c.reservation, nil
}

type fakeCommitRepo struct {
	attempts map[string]*domain.CommitAttempt

	committed []string
	failed    []string
}

func newFakeCommitRepo() *fakeCommitRepo {
	return &fakeCommitRepo{attempts: make(map[string]*domain.CommitAttempt)}
}

func (r *fakeCommitRepo) Create(_ context.Context, attempt *domain.CommitAttempt) (*domain.CommitAttempt, error) {
	if _, ok := r.attempts[attempt.IdempotencyKey]; ok {
		return nil, commitRepo.ErrDuplicateKey
	}
	copied := *attempt
	r.attempts[attempt.IdempotencyKey] = &copied
	return &copied, nil
}

func (r *fakeCommitRepo) GetByKey(_ context.Context, idempotencyKey string) (*domain.CommitAttempt, error) {
	attempt, ok := r.attempts[idempotencyKey]
	if !ok {
		return nil, commitRepo.ErrCommitNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (r *fakeCommitRepo) MarkCommitted(_ context.Context, idempotencyKey, reservationID string) error {
	r.committed = append(r.committed, idempotencyKey)
	if attempt, ok := r.attempts[idempotencyKey]; ok {
		attempt.Status = domain.CommitCommitted
		attempt.ReservationID = &reservationID
	}
	return nil
}

func (r *fakeCommitRepo) MarkFailed(_ context.Context, idempotencyKey string) error {
	r.failed = append(r.failed, idempotencyKey)
	if attempt, ok := r.attempts[idempotencyKey]; ok {
		attempt.Status = domain.CommitFailed
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func paymentSession() *domain.WizardSession {
	return &domain.WizardSession{
		ID:       "sess-1",
		UserID:   42,
		ItemType: domain.ItemTypeVehicle,
		ItemID:   "car-7",
		ItemName: "Toyota Corolla",
		UnitRate: 15000,
		Currency: "XOF",
		Step:     domain.StepPayment,
		Draft: domain.BookingDraft{
			ReservationType: domain.ReservationDeferred,
			StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			PickupTime:      "10:00",
			NumberOfDays:    3,
			TotalPrice:      45000,
		},
	}
}

func wireReservation() *rentalapi.Reservation {
	return &rentalapi.Reservation{
		ID:              "res-1",
		ItemID:          "car-7",
		ItemType:        "vehicle",
		ReservationType: "DIFFEREE",
		StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		NumberOfDays:    3,
		TotalPrice:      45000,
		Currency:        "XOF",
		Status:          "confirmed",
	}
}

func cardRequest() *Request {
	return &Request{
		SessionID:  "sess-1",
		UserID:     42,
		Method:     "VISA",
		CardNumber: "4111111111111111",
		CardHolder: "AMADOU DIALLO",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
}

func TestExecute_Success_MovesToConfirmation(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	gateway := &fakeGateway{}
	client := &fakeRentalClient{reservation: wireReservation()}
	commits := newFakeCommitRepo()
	uc := NewUseCase(store, gateway, client, commits, fakeTxManager{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), cardRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, resp.Session.Step)
	require.NotNil(t, resp.Session.Reservation)
	assert.Equal(t, "res-1", resp.Session.Reservation.ID)
	assert.Equal(t, "SIM-test-tx", resp.Outcome.TransactionID)

	// Сумма платежа взята из черновика
	assert.Equal(t, 45000.0, resp.Outcome.Amount)

	// Ключ идемпотентности сгенерирован, сохранен в сессии и отправлен в API
	require.NotNil(t, resp.Session.IdempotencyKey)
	assert.Equal(t, *resp.Session.IdempotencyKey, client.lastIdempotencyKey)

	// Журнал отметил коммит
	assert.Equal(t, []string{client.lastIdempotencyKey}, commits.committed)
	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 0, client.getCalls)

	// Сессия в хранилище на шаге подтверждения
	assert.Equal(t, domain.StepConfirmation, store.sessions["sess-1"].Step)
}

func TestExecute_Declined_CommitterNotCalled(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	gateway := &fakeGateway{err: paymentgw.ErrPaymentDeclined}
	client := &fakeRentalClient{reservation: wireReservation()}
	commits := newFakeCommitRepo()
	uc := NewUseCase(store, gateway, client, commits, fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), cardRequest())

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, 0, client.createCalls)
	assert.Empty(t, commits.attempts)

	// Сессия осталась на шаге оплаты
	assert.Equal(t, domain.StepPayment, store.sessions["sess-1"].Step)
}

func TestExecute_MissingCardFields(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	gateway := &fakeGateway{}
	client := &fakeRentalClient{reservation: wireReservation()}
	uc := NewUseCase(store, gateway, client, newFakeCommitRepo(), fakeTxManager{}, nil, nopLogger{})

	req := cardRequest()
	req.CardCVV = ""

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPaymentValidation)
	// До шлюза запрос не дошел
	assert.Equal(t, 0, gateway.calls)
}

func TestExecute_MobileMoneyRequiresPhone(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	uc := NewUseCase(store, &fakeGateway{}, &fakeRentalClient{}, newFakeCommitRepo(), fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    42,
		Method:    "MPESA",
	})

	assert.ErrorIs(t, err, ErrPaymentValidation)
}

func TestExecute_ReservationFailed_StaysOnPaymentStep(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	gateway := &fakeGateway{}
	client := &fakeRentalClient{createErr: rentalapi.ErrReservationFailed}
	commits := newFakeCommitRepo()
	uc := NewUseCase(store, gateway, client, commits, fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), cardRequest())

	assert.ErrorIs(t, err, ErrReservationFailed)
	assert.Equal(t, domain.StepPayment, store.sessions["sess-1"].Step)

	// Попытка помечена неуспешной, повторная отправка разрешена
	require.Len(t, commits.failed, 1)

	// Ключ идемпотентности пережил неудачный коммит
	sess := store.sessions["sess-1"]
	require.NotNil(t, sess.IdempotencyKey)
	assert.Equal(t, *sess.IdempotencyKey, client.lastIdempotencyKey)
}

func TestExecute_Retry_ReusesIdempotencyKey(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	gateway := &fakeGateway{}
	client := &fakeRentalClient{createErr: rentalapi.ErrReservationFailed}
	commits := newFakeCommitRepo()
	uc := NewUseCase(store, gateway, client, commits, fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), cardRequest())
	require.ErrorIs(t, err, ErrReservationFailed)
	firstKey := client.lastIdempotencyKey

	// Повторная отправка после сбоя использует тот же ключ
	client.createErr = nil
	client.reservation = wireReservation()

	resp, err := uc.Execute(context.Background(), cardRequest())
	require.NoError(t, err)
	assert.Equal(t, firstKey, client.lastIdempotencyKey)
	assert.Equal(t, domain.StepConfirmation, resp.Session.Step)
}

func TestExecute_AlreadyCommitted_FetchesExistingReservation(t *testing.T) {
	// Ответ прошлой попытки потерялся: журнал уже хранит committed ключ
	sess := paymentSession()
	key := "idem-key-1"
	sess.IdempotencyKey = &key

	store := newFakeSessionStore(sess)
	gateway := &fakeGateway{}
	client := &fakeRentalClient{reservation: wireReservation()}
	commits := newFakeCommitRepo()
	commits.attempts[key] = &domain.CommitAttempt{
		IdempotencyKey: key,
		SessionID:      sess.ID,
		UserID:         sess.UserID,
		Status:         domain.CommitCommitted,
		ReservationID:  ptr.Ptr("res-1"),
	}
	uc := NewUseCase(store, gateway, client, commits, fakeTxManager{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), cardRequest())

	require.NoError(t, err)
	// Дубликат не создается: бронирование читается, а не создается заново
	assert.Equal(t, 0, client.createCalls)
	assert.Equal(t, 1, client.getCalls)
	assert.Equal(t, "res-1", resp.Session.Reservation.ID)
	assert.Equal(t, domain.StepConfirmation, resp.Session.Step)
}

func TestExecute_WrongStep(t *testing.T) {
	sess := paymentSession()
	sess.Step = domain.StepDates
	store := newFakeSessionStore(sess)
	uc := NewUseCase(store, &fakeGateway{}, &fakeRentalClient{}, newFakeCommitRepo(), fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), cardRequest())

	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestExecute_AccessDenied(t *testing.T) {
	store := newFakeSessionStore(paymentSession())
	uc := NewUseCase(store, &fakeGateway{}, &fakeRentalClient{}, newFakeCommitRepo(), fakeTxManager{}, nil, nopLogger{})

	req := cardRequest()
	req.UserID = 99

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_VehiclePayloadFields(t *testing.T) {
	sess := paymentSession()
	sess.Draft.AdditionalDrivers = ptr.Ptr(1)
	sess.Draft.PickupLocation = &domain.GeoPoint{Lat: 14.7, Lng: -17.4, Address: "Dakar"}
	store := newFakeSessionStore(sess)
	client := &fakeRentalClient{reservation: wireReservation()}
	uc := NewUseCase(store, &fakeGateway{}, client, newFakeCommitRepo(), fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), cardRequest())

	require.NoError(t, err)
	require.NotNil(t, client.lastRequest)
	assert.Equal(t, "10:00", client.lastRequest.PickupTime)
	assert.Empty(t, client.lastRequest.EntryTime)
	assert.Equal(t, 1, *client.lastRequest.AdditionalDrivers)
	assert.Equal(t, "Dakar", client.lastRequest.PickupLocation.Address)
	assert.Equal(t, "SIM-test-tx", client.lastRequest.Payment.TransactionID)
	assert.Equal(t, 45000.0, client.lastRequest.Payment.Amount)
}
