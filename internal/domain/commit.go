package domain

import "time"

// CommitStatus статус попытки коммита бронирования в журнале идемпотентности
type CommitStatus string

const (
	CommitPending   CommitStatus = "pending"
	CommitCommitted CommitStatus = "committed"
	CommitFailed    CommitStatus = "failed"
)

// CommitAttempt запись журнала попыток создания бронирования
// Журнал гарантирует, что повторная отправка после обрыва ответа
// не создаст дубликат: у одного черновика ровно один ключ идемпотентности
type CommitAttempt struct {
	IdempotencyKey string
	SessionID      string
	UserID         int64
	ItemType       ItemType
	ItemID         string
	Status         CommitStatus

	// ID бронирования, заполняется после успешного коммита
	ReservationID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCommitted возвращает true, если бронирование уже создано по этому ключу
func (c *CommitAttempt) IsCommitted() bool {
	return c.Status == CommitCommitted && c.ReservationID != nil
}
