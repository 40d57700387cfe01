package reservations

import (
	"context"

	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// RentalAPIClient интерфейс клиента Rental API для чтения бронирований
type RentalAPIClient interface {
	GetReservation(ctx context.Context, reservationID string) (*rentalapi.Reservation, error)
	ListUserReservations(ctx context.Context, userID int64) ([]*rentalapi.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
