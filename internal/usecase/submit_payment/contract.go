package submit_payment

import (
	"context"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// SessionStore интерфейс хранилища сессий визарда
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.WizardSession, error)
	SaveExisting(ctx context.Context, sess *domain.WizardSession) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	Process(ctx context.Context, req *paymentgw.Request) (*domain.PaymentOutcome, error)
}

// RentalAPIClient интерфейс клиента Rental API
type RentalAPIClient interface {
	CreateReservation(ctx context.Context, itemType string, idempotencyKey string, req *rentalapi.CreateReservationRequest) (*rentalapi.Reservation, error)
	GetReservation(ctx context.Context, reservationID string) (*rentalapi.Reservation, error)
}

// CommitRepository интерфейс журнала попыток коммита
type CommitRepository interface {
	Create(ctx context.Context, attempt *domain.CommitAttempt) (*domain.CommitAttempt, error)
	GetByKey(ctx context.Context, idempotencyKey string) (*domain.CommitAttempt, error)
	MarkCommitted(ctx context.Context, idempotencyKey, reservationID string) error
	MarkFailed(ctx context.Context, idempotencyKey string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик визарда (может быть nil)
type Metrics interface {
	IncWizardStepTransition(from, to string)
	IncReservationCommitted()
	IncPaymentProcessed(method, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
