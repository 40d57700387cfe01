package rentalapi

import (
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// Vehicle модель автомобиля из каталога Rental API
type Vehicle struct {
	ID          string  `json:"id"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	PricePerDay float64 `json:"pricePerDay"`
	Currency    string  `json:"currency"`
	Available   bool    `json:"available"`
}

// DisplayName возвращает имя для снимка в сессии визарда
func (v *Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}

// Apartment модель квартиры из каталога Rental API
type Apartment struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	PricePerNight float64 `json:"pricePerNight"`
	Currency      string  `json:"currency"`
	MaxGuests     int     `json:"maxGuests"`
	Available     bool    `json:"available"`
}

// AvailabilityResponse ответ проверки доступности
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// PaymentInfo данные оплаты в составе запроса на бронирование
type PaymentInfo struct {
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

// CreateReservationRequest запрос на создание бронирования
// Типоспецифичные поля заполняются в зависимости от itemType
type CreateReservationRequest struct {
	ItemID          string `json:"itemId"`
	ReservationType string `json:"reservationType"`
	StartDate       string `json:"startDate"` // YYYY-MM-DD
	EndDate         string `json:"endDate"`   // YYYY-MM-DD

	PickupTime string `json:"pickupTime,omitempty"` // автомобили, HH:MM
	EntryTime  string `json:"entryTime,omitempty"`  // квартиры, HH:MM

	NumberOfGuests    *int             `json:"numberOfGuests,omitempty"`
	AdditionalDrivers *int             `json:"additionalDrivers,omitempty"`
	PickupLocation    *domain.GeoPoint `json:"pickupLocation,omitempty"`
	DropoffLocation   *domain.GeoPoint `json:"dropoffLocation,omitempty"`

	SpecialRequests string  `json:"specialRequests,omitempty"`
	NumberOfDays    int     `json:"numberOfDays"`
	TotalPrice      float64 `json:"totalPrice"`

	Payment PaymentInfo `json:"payment"`
}

// Reservation модель созданного бронирования из Rental API
type Reservation struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	ItemType        string    `json:"itemType"`
	ReservationType string    `json:"reservationType"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	NumberOfDays    int       `json:"numberOfDays"`
	TotalPrice      float64   `json:"totalPrice"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"paymentMethod"`
	TransactionID   string    `json:"paymentTransactionId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToDomain конвертирует wire-модель в доменную
func (r *Reservation) ToDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:                   r.ID,
		ItemID:               r.ItemID,
		ItemType:             domain.ItemType(r.ItemType),
		ReservationType:      domain.ReservationType(r.ReservationType),
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		NumberOfDays:         r.NumberOfDays,
		TotalPrice:           r.TotalPrice,
		Currency:             r.Currency,
		Status:               domain.ReservationStatus(r.Status),
		PaymentMethod:        r.PaymentMethod,
		PaymentTransactionID: r.TransactionID,
		CreatedAt:            r.CreatedAt,
	}
}

// ErrorResponse модель ошибки от Rental API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
