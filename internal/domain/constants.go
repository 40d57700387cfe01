package domain

// Business validation constants
const (
	// MinSpontaneousNoticeMinutes минимальный срок до подачи/заселения
	// для спонтанного бронирования (6 часов)
	MinSpontaneousNoticeMinutes = 360

	// ApartmentMonthlyFactor множитель для расчета месячной ставки квартиры
	// из ставки за ночь. Бизнес-правило маркетплейса: квартиры тарифицируются
	// по месячному эквиваленту
	ApartmentMonthlyFactor = 30

	MinNumberOfGuests        = 1
	MaxNumberOfGuests        = 20
	MinAdditionalDrivers     = 0
	MaxAdditionalDrivers     = 5
	MaxSpecialRequestsLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Wizard session defaults
const (
	// DefaultSessionTTLMinutes время жизни сессии визарда без активности
	// Страховка на случай, если клиент так и не закрыл визард явно
	DefaultSessionTTLMinutes = 60
)
