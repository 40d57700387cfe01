package rentalapi

import "errors"

var (
	// ErrItemNotFound возвращается, когда объект каталога не найден
	ErrItemNotFound = errors.New("rentalapi client: item not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("rentalapi client: reservation not found")

	// ErrAvailabilityCheckFailed возвращается при сетевой или HTTP ошибке
	// во время проверки доступности. Отрицательный результат проверки
	// (available=false) ошибкой не является
	ErrAvailabilityCheckFailed = errors.New("rentalapi client: availability check failed")

	// ErrReservationFailed возвращается при отказе бэкенда создать бронирование
	// Текст ошибки содержит сообщение сервера, если оно было в ответе
	ErrReservationFailed = errors.New("rentalapi client: reservation failed")

	// ErrUnauthorized возвращается при отклоненном bearer-токене
	ErrUnauthorized = errors.New("rentalapi client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("rentalapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("rentalapi client: invalid response")
)
