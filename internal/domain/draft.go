package domain

import (
	"time"

	"github.com/m04kA/SMC-RentalWizard/pkg/types"
)

// ItemType тип арендуемого объекта
type ItemType string

const (
	ItemTypeVehicle   ItemType = "vehicle"
	ItemTypeApartment ItemType = "apartment"
)

// IsValid возвращает true для известного типа объекта
func (t ItemType) IsValid() bool {
	return t == ItemTypeVehicle || t == ItemTypeApartment
}

// ReservationType тип бронирования
type ReservationType string

const (
	// ReservationDeferred отложенное бронирование на будущую дату,
	// без минимального срока до начала
	ReservationDeferred ReservationType = "DIFFEREE"

	// ReservationSpontaneous спонтанное бронирование на сегодня,
	// требует минимум 6 часов до подачи/заселения
	ReservationSpontaneous ReservationType = "SPONTANEE"
)

// IsValid возвращает true для известного типа бронирования
func (t ReservationType) IsValid() bool {
	return t == ReservationDeferred || t == ReservationSpontaneous
}

// WizardStep шаг визарда бронирования
type WizardStep int

const (
	StepDates        WizardStep = 1 // выбор дат
	StepPayment      WizardStep = 2 // выбор способа оплаты
	StepConfirmation WizardStep = 3 // подтверждение с данными бронирования
)

// String возвращает имя шага для логов и метрик
func (s WizardStep) String() string {
	switch s {
	case StepDates:
		return "dates"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// GeoPoint точка подачи или возврата автомобиля
type GeoPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// BookingDraft черновик бронирования, заполняемый на шаге выбора дат
// Живет только внутри открытой сессии визарда, нигде не персистится
type BookingDraft struct {
	ReservationType ReservationType  `json:"reservationType"`
	StartDate       time.Time        `json:"startDate"` // дата без времени
	EndDate         time.Time        `json:"endDate"`   // дата без времени
	PickupTime      types.TimeString `json:"pickupTime,omitempty"` // автомобили
	EntryTime       types.TimeString `json:"entryTime,omitempty"`  // квартиры

	NumberOfGuests    *int      `json:"numberOfGuests,omitempty"`    // только квартиры
	AdditionalDrivers *int      `json:"additionalDrivers,omitempty"` // только автомобили
	PickupLocation    *GeoPoint `json:"pickupLocation,omitempty"`    // только автомобили
	DropoffLocation   *GeoPoint `json:"dropoffLocation,omitempty"`   // только автомобили

	SpecialRequests string `json:"specialRequests,omitempty"`

	// Производные поля, пересчитываются при каждом изменении дат
	NumberOfDays int     `json:"numberOfDays"`
	TotalPrice   float64 `json:"totalPrice"`
}

// HasDates возвращает true, если обе даты заданы
func (d *BookingDraft) HasDates() bool {
	return !d.StartDate.IsZero() && !d.EndDate.IsZero()
}

// IsSpontaneous возвращает true для спонтанного бронирования
func (d *BookingDraft) IsSpontaneous() bool {
	return d.ReservationType == ReservationSpontaneous
}

// StartTimeOfDay возвращает время подачи/заселения в зависимости от типа объекта
func (d *BookingDraft) StartTimeOfDay(itemType ItemType) types.TimeString {
	if itemType == ItemTypeApartment {
		return d.EntryTime
	}
	return d.PickupTime
}

// WizardSession сессия визарда бронирования
// Владеет черновиком и текущим шагом; уничтожается при закрытии визарда
type WizardSession struct {
	ID     string `json:"id"`
	UserID int64  `json:"userId"`

	ItemType ItemType `json:"itemType"`
	ItemID   string   `json:"itemId"`

	// Снимок данных объекта из каталога на момент открытия визарда
	ItemName string  `json:"itemName"`
	UnitRate float64 `json:"unitRate"`
	Currency string  `json:"currency"`

	Step  WizardStep   `json:"step"`
	Draft BookingDraft `json:"draft"`

	// Ключ идемпотентности, генерируется при первой попытке коммита
	// и переживает повторные отправки в рамках одной сессии
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`

	// Заполняется после успешного создания бронирования (шаг 3)
	Reservation *Reservation `json:"reservation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanCheckAvailability возвращает true, если сессия на шаге выбора дат
func (s *WizardSession) CanCheckAvailability() bool {
	return s.Step == StepDates
}

// CanSubmitPayment возвращает true, если сессия на шаге оплаты
func (s *WizardSession) CanSubmitPayment() bool {
	return s.Step == StepPayment
}

// CanGoBack возвращает true, если доступен переход на предыдущий шаг
// Разрешен только возврат с оплаты на выбор дат
func (s *WizardSession) CanGoBack() bool {
	return s.Step == StepPayment
}

// IsCompleted возвращает true, если бронирование уже создано
func (s *WizardSession) IsCompleted() bool {
	return s.Step == StepConfirmation && s.Reservation != nil
}
