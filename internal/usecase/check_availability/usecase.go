package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	rentalClient "github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// UseCase use case проверки доступности и перехода на шаг оплаты
// Ровно один сетевой вызов к Availability Gate, без ретраев:
// любая ошибка оставляет сессию на шаге выбора дат
type UseCase struct {
	sessions     SessionStore
	rentalClient RentalAPIClient
	timeProvider TimeProvider
	metrics      Metrics // может быть nil
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	rentalClient RentalAPIClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		rentalClient: rentalClient,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: session=%s, user=%d", req.SessionID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем сессию и проверяем права доступа
	sess, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("CheckAvailability: session id=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if sess.UserID != req.UserID {
		uc.logger.Warn("CheckAvailability: access denied for user=%d to session id=%s", req.UserID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем шаг визарда
	if !sess.CanCheckAvailability() {
		uc.logger.Warn("CheckAvailability: session id=%s is at step %s", req.SessionID, sess.Step)
		return nil, ErrWrongStep
	}

	// 4. Локальная валидация дат: при любой ошибке Availability Gate не вызывается
	now := uc.timeProvider.Now()
	if err := validateDraft(&sess.Draft, sess.ItemType, now); err != nil {
		uc.logger.Warn("CheckAvailability: draft validation failed for session id=%s: %v", req.SessionID, err)
		return nil, err
	}

	// 5. Пересчитываем производные ценовые поля от текущего диапазона дат
	quote := domain.ComputePrice(sess.Draft.StartDate, sess.Draft.EndDate, sess.UnitRate)
	sess.Draft.NumberOfDays = quote.NumberOfDays
	sess.Draft.TotalPrice = quote.TotalPrice

	// 6. Один вызов Availability Gate без ретраев
	result, err := uc.rentalClient.CheckAvailability(
		ctx,
		string(sess.ItemType),
		sess.ItemID,
		sess.Draft.StartDate.Format(domain.DateFormat),
		sess.Draft.EndDate.Format(domain.DateFormat),
	)
	if err != nil {
		if errors.Is(err, rentalClient.ErrItemNotFound) {
			uc.logger.Warn("CheckAvailability: item id=%s not found", sess.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CheckAvailability: gate call failed for session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityCheckFailed, err)
	}

	// 7. Объект занят: остаемся на шаге выбора дат, пробрасываем причину
	if !result.Available {
		uc.logger.Info("CheckAvailability: item id=%s not available: %s", sess.ItemID, result.Reason)

		if err := uc.saveSession(ctx, sess); err != nil {
			return nil, err
		}
		return &Response{Available: false, Reason: result.Reason, Session: sess}, nil
	}

	// 8. Объект свободен: переходим на шаг оплаты
	sess.Step = domain.StepPayment

	if err := uc.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncWizardStepTransition(domain.StepDates.String(), domain.StepPayment.String())
	}

	uc.logger.Info("CheckAvailability: session id=%s advanced to step %s, days=%d, total=%.2f",
		req.SessionID, sess.Step, sess.Draft.NumberOfDays, sess.Draft.TotalPrice)

	return &Response{Available: true, Session: sess}, nil
}

// saveSession сохраняет сессию, если визард все еще открыт
// Закрытие визарда во время сетевого вызова отбрасывает его результат
func (uc *UseCase) saveSession(ctx context.Context, sess *domain.WizardSession) error {
	if err := uc.sessions.SaveExisting(ctx, sess); err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Info("CheckAvailability: session id=%s closed during check, result discarded", sess.ID)
			return ErrSessionClosed
		}
		uc.logger.Error("CheckAvailability: failed to save session id=%s: %v", sess.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}
	return nil
}
