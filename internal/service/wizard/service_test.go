package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
	"github.com/m04kA/SMC-RentalWizard/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSessionStore struct {
	sessions map[string]*domain.WizardSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.WizardSession)}
}

func (s *fakeSessionStore) Create(_ context.Context, sess *domain.WizardSession) error {
	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
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

func (s *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type fakeCatalog struct {
	vehicle   *rentalapi.Vehicle
	apartment *rentalapi.Apartment
}

func (c *fakeCatalog) GetVehicle(_ context.Context, _ string) (*rentalapi.Vehicle, error) {
	if c.vehicle == nil {
		return nil, rentalapi.ErrItemNotFound
	}
	return c.vehicle, nil
}

func (c *fakeCatalog) GetApartment(_ context.Context, _ string) (*rentalapi.Apartment, error) {
	if c.apartment == nil {
		return nil, rentalapi.ErrItemNotFound
	}
	return c.apartment, nil
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

func newTestService(store *fakeSessionStore, catalog *fakeCatalog, now time.Time) *Service {
	svc := NewService(store, catalog, nil, nopLogger{})
	svc.timeProvider = &fakeTime{now: now}
	return svc
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func startVehicleWizard(t *testing.T, svc *Service) string {
	t.Helper()
	resp, err := svc.Start(context.Background(), &models.StartWizardRequest{
		UserID:   42,
		ItemType: domain.ItemTypeVehicle,
		ItemID:   "car-7",
	})
	require.NoError(t, err)
	return resp.ID
}

func TestStart_SnapshotsVehicleRate(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{
		ID: "car-7", Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF",
	}}
	svc := newTestService(store, catalog, testNow)

	resp, err := svc.Start(context.Background(), &models.StartWizardRequest{
		UserID:   42,
		ItemType: domain.ItemTypeVehicle,
		ItemID:   "car-7",
	})

	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla", resp.ItemName)
	assert.Equal(t, 15000.0, resp.UnitRate)
	assert.Equal(t, "XOF", resp.Currency)
	assert.Equal(t, 1, resp.Step)
	assert.Equal(t, "dates", resp.StepName)
	assert.Equal(t, "DIFFEREE", resp.Draft.ReservationType)
}

func TestStart_ApartmentUsesMonthlyRate(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{apartment: &rentalapi.Apartment{
		ID: "apt-3", Title: "Studio Plateau", PricePerNight: 20000, Currency: "XOF",
	}}
	svc := newTestService(store, catalog, testNow)

	resp, err := svc.Start(context.Background(), &models.StartWizardRequest{
		UserID:   42,
		ItemType: domain.ItemTypeApartment,
		ItemID:   "apt-3",
	})

	require.NoError(t, err)
	assert.Equal(t, "Studio Plateau", resp.ItemName)
	assert.Equal(t, 600000.0, resp.UnitRate)
}

func TestStart_UnknownItemType(t *testing.T) {
	svc := newTestService(newFakeSessionStore(), &fakeCatalog{}, testNow)

	_, err := svc.Start(context.Background(), &models.StartWizardRequest{
		UserID:   42,
		ItemType: "boat",
		ItemID:   "b-1",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStart_ItemNotFound(t *testing.T) {
	svc := newTestService(newFakeSessionStore(), &fakeCatalog{}, testNow)

	_, err := svc.Start(context.Background(), &models.StartWizardRequest{
		UserID:   42,
		ItemType: domain.ItemTypeVehicle,
		ItemID:   "car-404",
	})

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateDraft_RecomputesPrice(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	resp, err := svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		StartDate: ptr.Ptr("2026-03-20"),
		EndDate:   ptr.Ptr("2026-03-23"),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Draft.NumberOfDays)
	assert.Equal(t, 45000.0, resp.Draft.TotalPrice)

	// Сужение диапазона не оставляет остатков от прежней цены
	resp, err = svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		EndDate: ptr.Ptr("2026-03-21"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Draft.NumberOfDays)
	assert.Equal(t, 15000.0, resp.Draft.TotalPrice)
}

func TestUpdateDraft_IncompleteRangeZeroesPrice(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	resp, err := svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		StartDate: ptr.Ptr("2026-03-20"),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Draft.NumberOfDays)
	assert.Equal(t, 0.0, resp.Draft.TotalPrice)
}

func TestUpdateDraft_RejectsApartmentFieldsOnVehicle(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	_, err := svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		NumberOfGuests: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		EntryTime: ptr.Ptr("14:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateDraft_SpontaneousPinsStartDateToToday(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	resp, err := svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		ReservationType: ptr.Ptr("SPONTANEE"),
		StartDate:       ptr.Ptr("2026-03-25"),
		EndDate:         ptr.Ptr("2026-03-27"),
	})

	require.NoError(t, err)
	// Спонтанное бронирование всегда начинается сегодня
	assert.Equal(t, "2026-03-15", resp.Draft.StartDate)
}

func TestUpdateDraft_WrongStep(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	store.sessions[sessionID].Step = domain.StepPayment

	_, err := svc.UpdateDraft(context.Background(), sessionID, 42, &models.UpdateDraftRequest{
		StartDate: ptr.Ptr("2026-03-20"),
	})

	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestBack_FromPaymentStep(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	// Возврат с шага выбора дат запрещен
	_, err := svc.Back(context.Background(), sessionID, 42)
	assert.ErrorIs(t, err, ErrWrongStep)

	store.sessions[sessionID].Step = domain.StepPayment

	resp, err := svc.Back(context.Background(), sessionID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Step)
}

func TestClose_DestroysSessionAndDraft(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	require.NoError(t, svc.Close(context.Background(), sessionID, 42))

	_, err := svc.Get(context.Background(), sessionID, 42)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Новый визард стартует с чистым черновиком
	newID := startVehicleWizard(t, svc)
	resp, err := svc.Get(context.Background(), newID, 42)
	require.NoError(t, err)
	assert.NotEqual(t, sessionID, newID)
	assert.Empty(t, resp.Draft.StartDate)
	assert.Equal(t, 0.0, resp.Draft.TotalPrice)
}

func TestClose_MissingSessionIsNotAnError(t *testing.T) {
	svc := newTestService(newFakeSessionStore(), &fakeCatalog{}, testNow)

	assert.NoError(t, svc.Close(context.Background(), "gone", 42))
}

func TestClose_AccessDenied(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	assert.ErrorIs(t, svc.Close(context.Background(), sessionID, 99), ErrAccessDenied)
}

func TestGet_AccessDenied(t *testing.T) {
	store := newFakeSessionStore()
	catalog := &fakeCatalog{vehicle: &rentalapi.Vehicle{Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF"}}
	svc := newTestService(store, catalog, testNow)
	sessionID := startVehicleWizard(t, svc)

	_, err := svc.Get(context.Background(), sessionID, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
