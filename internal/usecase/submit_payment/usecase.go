package submit_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	sessionStore "github.com/m04kA/SMC-RentalWizard/internal/infra/session"
	commitRepo "github.com/m04kA/SMC-RentalWizard/internal/infra/storage/commitlog"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/paymentgw"
)

// UseCase use case оплаты и коммита бронирования
// Последовательность: валидация реквизитов → платежный шлюз → журнал
// идемпотентности → Reservation Committer. Отказ шлюза не доходит до
// коммиттера; повторная отправка после обрыва ответа не создает дубликат
type UseCase struct {
	sessions     SessionStore
	gateway      PaymentGateway
	rentalClient RentalAPIClient
	commits      CommitRepository
	txManager    TransactionManager
	metrics      Metrics // может быть nil
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	gateway PaymentGateway,
	rentalClient RentalAPIClient,
	commits CommitRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		gateway:      gateway,
		rentalClient: rentalClient,
		commits:      commits,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет оплату и коммит бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitPayment: session=%s, user=%d, method=%s", req.SessionID, req.UserID, req.Method)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем сессию и проверяем права доступа
	sess, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("SubmitPayment: session id=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SubmitPayment: failed to get session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if sess.UserID != req.UserID {
		uc.logger.Warn("SubmitPayment: access denied for user=%d to session id=%s", req.UserID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем шаг визарда
	if !sess.CanSubmitPayment() {
		uc.logger.Warn("SubmitPayment: session id=%s is at step %s", req.SessionID, sess.Step)
		return nil, ErrWrongStep
	}

	// 4. Валидация реквизитов для выбранного класса способа оплаты
	payment, err := buildPaymentRequest(sess, req)
	if err != nil {
		uc.logger.Warn("SubmitPayment: payment validation failed for session id=%s: %v", req.SessionID, err)
		return nil, err
	}

	// 5. Проводим платеж. Отказ шлюза оставляет сессию на шаге оплаты,
	// Reservation Committer не вызывается
	outcome, err := uc.gateway.Process(ctx, payment)
	if err != nil {
		if errors.Is(err, paymentgw.ErrMissingFields) || errors.Is(err, paymentgw.ErrUnknownMethod) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentValidation, err)
		}
		if errors.Is(err, paymentgw.ErrPaymentDeclined) {
			uc.logger.Warn("SubmitPayment: payment declined for session id=%s", req.SessionID)
			uc.observePayment(req.Method, "declined")
			return nil, ErrPaymentFailed
		}
		uc.logger.Error("SubmitPayment: gateway error for session id=%s: %v", req.SessionID, err)
		uc.observePayment(req.Method, "error")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	uc.observePayment(req.Method, "succeeded")

	// 6. Ключ идемпотентности: генерируется один раз на черновик
	// и сохраняется в сессии до обращения к коммиттеру, чтобы повторная
	// отправка после сбоя использовала тот же ключ
	if sess.IdempotencyKey == nil {
		key := uuid.NewString()
		sess.IdempotencyKey = &key
		if err := uc.saveSession(ctx, sess); err != nil {
			return nil, err
		}
	}
	idempotencyKey := *sess.IdempotencyKey

	// 7. Журнал попыток: в сериализуемой транзакции выясняем, не был ли
	// этот ключ уже закоммичен (защита от дубликата при гонке повторных отправок)
	var committedReservationID string

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		attempt, err := uc.commits.GetByKey(txCtx, idempotencyKey)
		if err != nil && !errors.Is(err, commitRepo.ErrCommitNotFound) {
			return fmt.Errorf("%w: failed to get commit attempt: %v", ErrInternal, err)
		}

		if attempt != nil {
			if attempt.IsCommitted() {
				committedReservationID = *attempt.ReservationID
			}
			// pending/failed: повторная попытка по тому же ключу
			return nil
		}

		_, err = uc.commits.Create(txCtx, &domain.CommitAttempt{
			IdempotencyKey: idempotencyKey,
			SessionID:      sess.ID,
			UserID:         sess.UserID,
			ItemType:       sess.ItemType,
			ItemID:         sess.ItemID,
			Status:         domain.CommitPending,
		})
		if err != nil && !errors.Is(err, commitRepo.ErrDuplicateKey) {
			return fmt.Errorf("%w: failed to record commit attempt: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitPayment: commit journal error for session id=%s: %v", req.SessionID, err)
		return nil, err
	}

	// 8. Коммит бронирования (или чтение уже созданного по этому ключу)
	reservation, err := uc.commitReservation(ctx, sess, outcome, idempotencyKey, committedReservationID)
	if err != nil {
		return nil, err
	}

	// 9. Переходим на шаг подтверждения
	sess.Reservation = reservation
	sess.Step = domain.StepConfirmation

	if err := uc.saveSession(ctx, sess); err != nil {
		// Бронирование создано, но визард уже закрыт: журнал сохранил
		// ключ и ID, пользователь увидит бронирование в своем списке
		uc.logger.Warn("SubmitPayment: session id=%s closed after commit, reservation id=%s kept", sess.ID, reservation.ID)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncWizardStepTransition(domain.StepPayment.String(), domain.StepConfirmation.String())
	}

	uc.logger.Info("SubmitPayment: session id=%s completed, reservation id=%s, total=%.2f",
		req.SessionID, reservation.ID, reservation.TotalPrice)

	return &Response{Session: sess, Outcome: outcome}, nil
}

// commitReservation создает бронирование через Rental API или возвращает
// уже созданное по этому ключу идемпотентности
func (uc *UseCase) commitReservation(
	ctx context.Context,
	sess *domain.WizardSession,
	outcome *domain.PaymentOutcome,
	idempotencyKey string,
	committedReservationID string,
) (*domain.Reservation, error) {
	// Ключ уже закоммичен: прошлый ответ потерялся по дороге к клиенту,
	// бронирование существует - читаем его вместо повторного POST
	if committedReservationID != "" {
		uc.logger.Info("SubmitPayment: idempotency key=%s already committed, reservation id=%s",
			idempotencyKey, committedReservationID)

		reservation, err := uc.rentalClient.GetReservation(ctx, committedReservationID)
		if err != nil {
			uc.logger.Error("SubmitPayment: failed to fetch committed reservation id=%s: %v", committedReservationID, err)
			return nil, fmt.Errorf("%w: failed to fetch committed reservation: %v", ErrInternal, err)
		}
		return reservation.ToDomain(), nil
	}

	payload := assemblePayload(sess, outcome)

	created, err := uc.rentalClient.CreateReservation(ctx, string(sess.ItemType), idempotencyKey, payload)
	if err != nil {
		// Помечаем попытку неуспешной, чтобы повторная отправка была разрешена
		if markErr := uc.commits.MarkFailed(ctx, idempotencyKey); markErr != nil {
			uc.logger.Error("SubmitPayment: failed to mark commit attempt failed key=%s: %v", idempotencyKey, markErr)
		}
		uc.logger.Error("SubmitPayment: reservation commit failed for session id=%s: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrReservationFailed, err)
	}

	if err := uc.commits.MarkCommitted(ctx, idempotencyKey, created.ID); err != nil {
		// Бронирование создано; ошибка журнала не должна ронять happy path
		uc.logger.Error("SubmitPayment: failed to mark commit attempt committed key=%s: %v", idempotencyKey, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncReservationCommitted()
	}

	return created.ToDomain(), nil
}

// saveSession сохраняет сессию, если визард все еще открыт
func (uc *UseCase) saveSession(ctx context.Context, sess *domain.WizardSession) error {
	if err := uc.sessions.SaveExisting(ctx, sess); err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return ErrSessionClosed
		}
		uc.logger.Error("SubmitPayment: failed to save session id=%s: %v", sess.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}
	return nil
}

// observePayment фиксирует метрику попытки оплаты
func (uc *UseCase) observePayment(method, outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncPaymentProcessed(method, outcome)
	}
}
