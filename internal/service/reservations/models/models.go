package models

import (
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              string  `json:"id"`
	ItemID          string  `json:"itemId"`
	ItemType        string  `json:"itemType"`
	ReservationType string  `json:"reservationType"`
	StartDate       string  `json:"startDate"` // YYYY-MM-DD
	EndDate         string  `json:"endDate"`   // YYYY-MM-DD
	NumberOfDays    int     `json:"numberOfDays"`
	TotalPrice      float64 `json:"totalPrice"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   string  `json:"paymentTransactionId"`
	CreatedAt       string  `json:"createdAt"`
}

// ReservationListResponse список бронирований пользователя
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует доменное бронирование в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		ItemType:        string(r.ItemType),
		ReservationType: string(r.ReservationType),
		StartDate:       r.StartDate.Format(domain.DateFormat),
		EndDate:         r.EndDate.Format(domain.DateFormat),
		NumberOfDays:    r.NumberOfDays,
		TotalPrice:      r.TotalPrice,
		Currency:        r.Currency,
		Status:          string(r.Status),
		PaymentMethod:   r.PaymentMethod,
		TransactionID:   r.PaymentTransactionID,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список бронирований в response
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}
