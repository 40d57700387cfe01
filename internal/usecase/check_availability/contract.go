package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// SessionStore интерфейс хранилища сессий визарда
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.WizardSession, error)
	SaveExisting(ctx context.Context, sess *domain.WizardSession) error
}

// RentalAPIClient интерфейс клиента Rental API
type RentalAPIClient interface {
	CheckAvailability(ctx context.Context, itemType, itemID, startISO, endISO string) (*rentalapi.AvailabilityResponse, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик визарда (может быть nil)
type Metrics interface {
	IncWizardStepTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
