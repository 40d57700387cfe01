package reservations

import (
	"context"
	"errors"
	"fmt"

	rentalClient "github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
	"github.com/m04kA/SMC-RentalWizard/internal/service/reservations/models"
)

// Service сервис чтения бронирований
// Тонкий прокси над Rental API: бронированиями владеет внешний бэкенд,
// этот сервис только читает их для отображения
type Service struct {
	rentalClient RentalAPIClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(rentalClient RentalAPIClient, logger Logger) *Service {
	return &Service{
		rentalClient: rentalClient,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, reservationID string) (*models.ReservationResponse, error) {
	if reservationID == "" {
		return nil, fmt.Errorf("%w: reservationId is required", ErrInvalidInput)
	}

	s.logger.Info("GetByID: fetching reservation id=%s", reservationID)

	reservation, err := s.rentalClient.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, rentalClient.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", reservationID)
			return nil, ErrReservationNotFound
		}
		if errors.Is(err, rentalClient.ErrUnauthorized) {
			s.logger.Warn("GetByID: access denied for reservation id=%s", reservationID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetByID: failed to get reservation id=%s: %v", reservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation.ToDomain()), nil
}

// ListByUser получает список бронирований пользователя
// Пользователь может запрашивать только собственные бронирования
func (s *Service) ListByUser(ctx context.Context, userID, requesterID int64) (*models.ReservationListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if userID != requesterID {
		s.logger.Warn("ListByUser: user=%d requested reservations of user=%d", requesterID, userID)
		return nil, ErrAccessDenied
	}

	s.logger.Info("ListByUser: fetching reservations for user=%d", userID)

	reservations, err := s.rentalClient.ListUserReservations(ctx, userID)
	if err != nil {
		if errors.Is(err, rentalClient.ErrUnauthorized) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("ListByUser: failed to list reservations for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	list := make([]*models.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		list = append(list, models.FromDomainReservation(r.ToDomain()))
	}

	s.logger.Info("ListByUser: fetched %d reservations for user=%d", len(list), userID)
	return &models.ReservationListResponse{Reservations: list, Total: len(list)}, nil
}
