package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// SessionStore интерфейс хранилища сессий визарда
type SessionStore interface {
	Create(ctx context.Context, sess *domain.WizardSession) error
	Get(ctx context.Context, sessionID string) (*domain.WizardSession, error)
	SaveExisting(ctx context.Context, sess *domain.WizardSession) error
	Delete(ctx context.Context, sessionID string) error
}

// RentalAPIClient интерфейс клиента каталога Rental API
type RentalAPIClient interface {
	GetVehicle(ctx context.Context, vehicleID string) (*rentalapi.Vehicle, error)
	GetApartment(ctx context.Context, apartmentID string) (*rentalapi.Apartment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Metrics интерфейс метрик визарда (может быть nil)
type Metrics interface {
	IncWizardSessionStarted()
	IncWizardStepTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
