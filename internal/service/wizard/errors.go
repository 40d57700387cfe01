package wizard

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или закрыта
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrAccessDenied возвращается при попытке доступа к чужой сессии
	ErrAccessDenied = errors.New("wizard: access denied")

	// ErrWrongStep возвращается, когда операция недоступна на текущем шаге
	ErrWrongStep = errors.New("wizard: operation not allowed at current step")

	// ErrItemNotFound возвращается, когда объект каталога не найден
	ErrItemNotFound = errors.New("wizard: rental item not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("wizard: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("wizard: internal error")
)
