package domain

import "time"

// ReservationStatus статус бронирования на стороне Rental API
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Reservation созданное бронирование, возвращаемое Rental API
// Клиент никогда не мутирует его, только отображает
type Reservation struct {
	ID       string   `json:"id"`
	ItemID   string   `json:"itemId"`
	ItemType ItemType `json:"itemType"`

	ReservationType ReservationType `json:"reservationType"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`

	NumberOfDays int               `json:"numberOfDays"`
	TotalPrice   float64           `json:"totalPrice"`
	Currency     string            `json:"currency"`
	Status       ReservationStatus `json:"status"`

	// Данные оплаты, зафиксированные при создании
	PaymentMethod        string `json:"paymentMethod"`
	PaymentTransactionID string `json:"paymentTransactionId"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsActive возвращает true для незавершённого и неотменённого бронирования
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// AvailabilityResult результат проверки доступности объекта
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
