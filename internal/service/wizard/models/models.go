package models

import (
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// Request модели

// StartWizardRequest запрос на открытие визарда бронирования
type StartWizardRequest struct {
	UserID   int64           `json:"userId"`
	ItemType domain.ItemType `json:"itemType"`
	ItemID   string          `json:"itemId"`
}

// UpdateDraftRequest частичное обновление черновика (шаг выбора дат)
// Непереданные поля не изменяются
type UpdateDraftRequest struct {
	ReservationType *string `json:"reservationType,omitempty"`
	StartDate       *string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate         *string `json:"endDate,omitempty"`   // YYYY-MM-DD
	PickupTime      *string `json:"pickupTime,omitempty"` // HH:MM, автомобили
	EntryTime       *string `json:"entryTime,omitempty"`  // HH:MM, квартиры

	NumberOfGuests    *int             `json:"numberOfGuests,omitempty"`
	AdditionalDrivers *int             `json:"additionalDrivers,omitempty"`
	PickupLocation    *domain.GeoPoint `json:"pickupLocation,omitempty"`
	DropoffLocation   *domain.GeoPoint `json:"dropoffLocation,omitempty"`

	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// Response модели

// DraftResponse черновик в составе ответа
type DraftResponse struct {
	ReservationType string `json:"reservationType,omitempty"`
	StartDate       string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate         string `json:"endDate,omitempty"`   // YYYY-MM-DD
	PickupTime      string `json:"pickupTime,omitempty"`
	EntryTime       string `json:"entryTime,omitempty"`

	NumberOfGuests    *int             `json:"numberOfGuests,omitempty"`
	AdditionalDrivers *int             `json:"additionalDrivers,omitempty"`
	PickupLocation    *domain.GeoPoint `json:"pickupLocation,omitempty"`
	DropoffLocation   *domain.GeoPoint `json:"dropoffLocation,omitempty"`

	SpecialRequests string  `json:"specialRequests,omitempty"`
	NumberOfDays    int     `json:"numberOfDays"`
	TotalPrice      float64 `json:"totalPrice"`
}

// ReservationResponse созданное бронирование в составе ответа
type ReservationResponse struct {
	ID              string  `json:"id"`
	ItemID          string  `json:"itemId"`
	ItemType        string  `json:"itemType"`
	ReservationType string  `json:"reservationType"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	NumberOfDays    int     `json:"numberOfDays"`
	TotalPrice      float64 `json:"totalPrice"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   string  `json:"paymentTransactionId"`
	CreatedAt       string  `json:"createdAt"`
}

// WizardResponse состояние сессии визарда
type WizardResponse struct {
	ID       string `json:"id"`
	ItemType string `json:"itemType"`
	ItemID   string `json:"itemId"`

	ItemName string  `json:"itemName"`
	UnitRate float64 `json:"unitRate"`
	Currency string  `json:"currency"`

	Step     int           `json:"step"`
	StepName string        `json:"stepName"`
	Draft    DraftResponse `json:"draft"`

	Reservation *ReservationResponse `json:"reservation,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomainSession конвертирует доменную сессию в response
func FromDomainSession(sess *domain.WizardSession) *WizardResponse {
	resp := &WizardResponse{
		ID:        sess.ID,
		ItemType:  string(sess.ItemType),
		ItemID:    sess.ItemID,
		ItemName:  sess.ItemName,
		UnitRate:  sess.UnitRate,
		Currency:  sess.Currency,
		Step:      int(sess.Step),
		StepName:  sess.Step.String(),
		Draft:     fromDomainDraft(&sess.Draft),
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sess.UpdatedAt.Format(time.RFC3339),
	}

	if sess.Reservation != nil {
		resp.Reservation = FromDomainReservation(sess.Reservation)
	}
	return resp
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

func fromDomainDraft(d *domain.BookingDraft) DraftResponse {
	resp := DraftResponse{
		ReservationType:   string(d.ReservationType),
		PickupTime:        d.PickupTime.String(),
		EntryTime:         d.EntryTime.String(),
		NumberOfGuests:    d.NumberOfGuests,
		AdditionalDrivers: d.AdditionalDrivers,
		PickupLocation:    d.PickupLocation,
		DropoffLocation:   d.DropoffLocation,
		SpecialRequests:   d.SpecialRequests,
		NumberOfDays:      d.NumberOfDays,
		TotalPrice:        d.TotalPrice,
	}

	if !d.StartDate.IsZero() {
		resp.StartDate = d.StartDate.Format(domain.DateFormat)
	}
	if !d.EndDate.IsZero() {
		resp.EndDate = d.EndDate.Format(domain.DateFormat)
	}
	return resp
}
