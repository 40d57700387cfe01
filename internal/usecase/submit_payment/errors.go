package submit_payment

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("submit_payment: session not found")

	// ErrSessionClosed возвращается, когда визард закрыли во время оплаты
	ErrSessionClosed = errors.New("submit_payment: session closed during payment")

	// ErrAccessDenied возвращается при доступе к чужой сессии
	ErrAccessDenied = errors.New("submit_payment: access denied")

	// ErrWrongStep возвращается, когда сессия не на шаге оплаты
	ErrWrongStep = errors.New("submit_payment: session is not at the payment step")

	// ErrPaymentValidation возвращается, когда реквизиты оплаты не заполнены
	// для выбранного способа
	ErrPaymentValidation = errors.New("submit_payment: invalid payment data")

	// ErrPaymentFailed возвращается при отказе платежного шлюза
	// Reservation Committer при этом не вызывается
	ErrPaymentFailed = errors.New("submit_payment: payment failed")

	// ErrReservationFailed возвращается при отказе бэкенда создать бронирование
	// Сессия остается на шаге оплаты, платеж уже проведен
	ErrReservationFailed = errors.New("submit_payment: reservation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_payment: internal error")
)
