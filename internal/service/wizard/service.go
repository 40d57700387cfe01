package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	rentalClient "github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
	"github.com/m04kA/SMC-RentalWizard/pkg/types"
)

// Service сервис жизненного цикла сессий визарда бронирования
// Владеет черновиком и переходами, не требующими внешних вызовов:
// открытие, чтение, правка черновика, возврат на шаг назад, закрытие.
// Переходы вперед (проверка доступности, оплата) живут в usecases
type Service struct {
	sessions     SessionStore
	rentalClient RentalAPIClient
	timeProvider TimeProvider
	metrics      Metrics // может быть nil
	logger       Logger
}

// NewService создает новый экземпляр сервиса визарда
func NewService(
	sessions SessionStore,
	rentalClient RentalAPIClient,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		sessions:     sessions,
		rentalClient: rentalClient,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Start открывает новую сессию визарда для объекта каталога
// Снимает ставку аренды из каталога на момент открытия: дальнейший расчет
// цены идет от этого снимка, а не от живых данных каталога
func (s *Service) Start(ctx context.Context, req *models.StartWizardRequest) (*models.WizardResponse, error) {
	s.logger.Info("StartWizard: user=%d, itemType=%s, itemId=%s", req.UserID, req.ItemType, req.ItemID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if !req.ItemType.IsValid() {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, req.ItemType)
	}
	if req.ItemID == "" {
		return nil, fmt.Errorf("%w: itemId is required", ErrInvalidInput)
	}

	var (
		itemName string
		unitRate float64
		currency string
	)

	switch req.ItemType {
	case domain.ItemTypeVehicle:
		vehicle, err := s.rentalClient.GetVehicle(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, rentalClient.ErrItemNotFound) {
				s.logger.Warn("StartWizard: vehicle id=%s not found", req.ItemID)
				return nil, ErrItemNotFound
			}
			s.logger.Error("StartWizard: failed to get vehicle id=%s: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		itemName = vehicle.DisplayName()
		unitRate = domain.UnitRateFor(req.ItemType, vehicle.PricePerDay, 0)
		currency = vehicle.Currency

	case domain.ItemTypeApartment:
		apartment, err := s.rentalClient.GetApartment(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, rentalClient.ErrItemNotFound) {
				s.logger.Warn("StartWizard: apartment id=%s not found", req.ItemID)
				return nil, ErrItemNotFound
			}
			s.logger.Error("StartWizard: failed to get apartment id=%s: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to get apartment: %v", ErrInternal, err)
		}
		itemName = apartment.Title
		unitRate = domain.UnitRateFor(req.ItemType, 0, apartment.PricePerNight)
		currency = apartment.Currency
	}

	now := s.timeProvider.Now().UTC()
	sess := &domain.WizardSession{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		ItemName: itemName,
		UnitRate: unitRate,
		Currency: currency,
		Step:     domain.StepDates,
		Draft: domain.BookingDraft{
			ReservationType: domain.ReservationDeferred,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		s.logger.Error("StartWizard: failed to create session: %v", err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.IncWizardSessionStarted()
	}

	s.logger.Info("StartWizard: session id=%s created for user=%d", sess.ID, req.UserID)
	return models.FromDomainSession(sess), nil
}

// Get возвращает состояние сессии
func (s *Service) Get(ctx context.Context, sessionID string, userID int64) (*models.WizardResponse, error) {
	sess, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(sess), nil
}

// UpdateDraft применяет частичное обновление черновика
// Доступно только на шаге выбора дат. Производные ценовые поля
// пересчитываются при каждом изменении: остаточных значений от прежнего
// диапазона дат не бывает
func (s *Service) UpdateDraft(ctx context.Context, sessionID string, userID int64, req *models.UpdateDraftRequest) (*models.WizardResponse, error) {
	sess, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if sess.Step != domain.StepDates {
		s.logger.Warn("UpdateDraft: session id=%s is at step %s", sessionID, sess.Step)
		return nil, ErrWrongStep
	}

	if err := s.applyPatch(sess, req); err != nil {
		s.logger.Warn("UpdateDraft: session id=%s: %v", sessionID, err)
		return nil, err
	}

	s.recomputePrice(sess)

	if err := s.sessions.SaveExisting(ctx, sess); err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("UpdateDraft: failed to save session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return models.FromDomainSession(sess), nil
}

// Back возвращает визард с шага оплаты на шаг выбора дат
func (s *Service) Back(ctx context.Context, sessionID string, userID int64) (*models.WizardResponse, error) {
	sess, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if !sess.CanGoBack() {
		s.logger.Warn("Back: session id=%s is at step %s", sessionID, sess.Step)
		return nil, ErrWrongStep
	}

	sess.Step = domain.StepDates

	if err := s.sessions.SaveExisting(ctx, sess); err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Back: failed to save session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.IncWizardStepTransition(domain.StepPayment.String(), domain.StepDates.String())
	}

	s.logger.Info("Back: session id=%s returned to step %s", sessionID, domain.StepDates)
	return models.FromDomainSession(sess), nil
}

// Close закрывает визард и уничтожает сессию вместе с черновиком
// Доступно с любого шага; повторное закрытие не является ошибкой
func (s *Service) Close(ctx context.Context, sessionID string, userID int64) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			// Сессия уже закрыта или истекла
			return nil
		}
		s.logger.Error("Close: failed to get session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if sess.UserID != userID {
		s.logger.Warn("Close: access denied for user=%d to session id=%s", userID, sessionID)
		return ErrAccessDenied
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Close: failed to delete session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}

	s.logger.Info("Close: session id=%s closed from step %s", sessionID, sess.Step)
	return nil
}

// load загружает сессию и проверяет права доступа
func (s *Service) load(ctx context.Context, sessionID string, userID int64) (*domain.WizardSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load: failed to get session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if sess.UserID != userID {
		s.logger.Warn("load: access denied for user=%d to session id=%s", userID, sessionID)
		return nil, ErrAccessDenied
	}
	return sess, nil
}

// applyPatch применяет непустые поля запроса к черновику с валидацией
func (s *Service) applyPatch(sess *domain.WizardSession, req *models.UpdateDraftRequest) error {
	draft := &sess.Draft

	if req.ReservationType != nil {
		rt := domain.ReservationType(*req.ReservationType)
		if !rt.IsValid() {
			return fmt.Errorf("%w: unknown reservation type %q", ErrInvalidInput, *req.ReservationType)
		}
		draft.ReservationType = rt
	}

	if req.StartDate != nil {
		date, err := time.Parse(domain.DateFormat, *req.StartDate)
		if err != nil {
			return fmt.Errorf("%w: invalid startDate format: %v", ErrInvalidInput, err)
		}
		draft.StartDate = date
	}

	if req.EndDate != nil {
		date, err := time.Parse(domain.DateFormat, *req.EndDate)
		if err != nil {
			return fmt.Errorf("%w: invalid endDate format: %v", ErrInvalidInput, err)
		}
		draft.EndDate = date
	}

	if req.PickupTime != nil {
		if sess.ItemType != domain.ItemTypeVehicle {
			return fmt.Errorf("%w: pickupTime is only valid for vehicles", ErrInvalidInput)
		}
		ts, err := types.NewTimeStringFromString(*req.PickupTime)
		if err != nil {
			return fmt.Errorf("%w: invalid pickupTime: %v", ErrInvalidInput, err)
		}
		draft.PickupTime = ts
	}

	if req.EntryTime != nil {
		if sess.ItemType != domain.ItemTypeApartment {
			return fmt.Errorf("%w: entryTime is only valid for apartments", ErrInvalidInput)
		}
		ts, err := types.NewTimeStringFromString(*req.EntryTime)
		if err != nil {
			return fmt.Errorf("%w: invalid entryTime: %v", ErrInvalidInput, err)
		}
		draft.EntryTime = ts
	}

	if req.NumberOfGuests != nil {
		if sess.ItemType != domain.ItemTypeApartment {
			return fmt.Errorf("%w: numberOfGuests is only valid for apartments", ErrInvalidInput)
		}
		if *req.NumberOfGuests < domain.MinNumberOfGuests || *req.NumberOfGuests > domain.MaxNumberOfGuests {
			return fmt.Errorf("%w: numberOfGuests must be between %d and %d",
				ErrInvalidInput, domain.MinNumberOfGuests, domain.MaxNumberOfGuests)
		}
		draft.NumberOfGuests = req.NumberOfGuests
	}

	if req.AdditionalDrivers != nil {
		if sess.ItemType != domain.ItemTypeVehicle {
			return fmt.Errorf("%w: additionalDrivers is only valid for vehicles", ErrInvalidInput)
		}
		if *req.AdditionalDrivers < domain.MinAdditionalDrivers || *req.AdditionalDrivers > domain.MaxAdditionalDrivers {
			return fmt.Errorf("%w: additionalDrivers must be between %d and %d",
				ErrInvalidInput, domain.MinAdditionalDrivers, domain.MaxAdditionalDrivers)
		}
		draft.AdditionalDrivers = req.AdditionalDrivers
	}

	if req.PickupLocation != nil {
		if sess.ItemType != domain.ItemTypeVehicle {
			return fmt.Errorf("%w: pickupLocation is only valid for vehicles", ErrInvalidInput)
		}
		draft.PickupLocation = req.PickupLocation
	}

	if req.DropoffLocation != nil {
		if sess.ItemType != domain.ItemTypeVehicle {
			return fmt.Errorf("%w: dropoffLocation is only valid for vehicles", ErrInvalidInput)
		}
		draft.DropoffLocation = req.DropoffLocation
	}

	if req.SpecialRequests != nil {
		if len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
			return fmt.Errorf("%w: specialRequests exceeds %d characters",
				ErrInvalidInput, domain.MaxSpecialRequestsLength)
		}
		draft.SpecialRequests = *req.SpecialRequests
	}

	// Спонтанное бронирование всегда начинается сегодня
	if draft.IsSpontaneous() {
		now := s.timeProvider.Now()
		draft.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	return nil
}

// recomputePrice пересчитывает производные ценовые поля черновика
// Для неполного или неположительного диапазона дат обнуляет их
func (s *Service) recomputePrice(sess *domain.WizardSession) {
	draft := &sess.Draft

	if !draft.HasDates() || !draft.EndDate.After(draft.StartDate) {
		draft.NumberOfDays = 0
		draft.TotalPrice = 0
		return
	}

	quote := domain.ComputePrice(draft.StartDate, draft.EndDate, sess.UnitRate)
	draft.NumberOfDays = quote.NumberOfDays
	draft.TotalPrice = quote.TotalPrice
}
