package check_availability

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("check_availability: session not found")

	// ErrSessionClosed возвращается, когда визард закрыли во время проверки
	// Результат завершившегося вызова отбрасывается
	ErrSessionClosed = errors.New("check_availability: session closed during check")

	// ErrAccessDenied возвращается при доступе к чужой сессии
	ErrAccessDenied = errors.New("check_availability: access denied")

	// ErrWrongStep возвращается, когда сессия не на шаге выбора дат
	ErrWrongStep = errors.New("check_availability: session is not at the dates step")

	// ErrDatesRequired возвращается, когда даты не заполнены
	ErrDatesRequired = errors.New("check_availability: start and end dates are required")

	// ErrInvalidDateRange возвращается, когда дата окончания не позже даты начала
	ErrInvalidDateRange = errors.New("check_availability: end date must be after start date")

	// ErrDateInPast возвращается, когда дата начала в прошлом
	ErrDateInPast = errors.New("check_availability: start date is in the past")

	// ErrTimeRequired возвращается, когда не указано время подачи/заселения
	// для спонтанного бронирования
	ErrTimeRequired = errors.New("check_availability: pickup or entry time is required for spontaneous booking")

	// ErrTooLateToBook возвращается, когда спонтанное бронирование нарушает
	// минимальный 6-часовой срок до подачи/заселения
	ErrTooLateToBook = errors.New("check_availability: spontaneous booking requires at least 6 hours notice")

	// ErrItemNotFound возвращается, когда объект не найден на стороне Rental API
	ErrItemNotFound = errors.New("check_availability: rental item not found")

	// ErrAvailabilityCheckFailed возвращается при сетевой или HTTP ошибке
	// во время проверки доступности
	ErrAvailabilityCheckFailed = errors.New("check_availability: availability check failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
