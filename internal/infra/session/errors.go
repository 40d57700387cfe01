package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или уже закрыта
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("session.store: internal error")
)
