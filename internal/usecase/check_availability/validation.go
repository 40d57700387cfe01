package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionId is required", ErrInternal)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInternal)
	}
	return nil
}

// validateDraft проверяет даты и времена черновика перед обращением
// к Availability Gate. Любая ошибка здесь блокирует переход и гарантирует,
// что сетевой вызов не выполняется
func validateDraft(draft *domain.BookingDraft, itemType domain.ItemType, now time.Time) error {
	if !draft.HasDates() {
		return ErrDatesRequired
	}

	if !draft.EndDate.After(draft.StartDate) {
		return ErrInvalidDateRange
	}

	if isDateInPast(draft.StartDate, now) {
		return ErrDateInPast
	}

	if draft.IsSpontaneous() {
		return validateSpontaneousNotice(draft, itemType, now)
	}

	return nil
}

// validateSpontaneousNotice проверяет 6-часовой минимальный срок
// для спонтанного бронирования
func validateSpontaneousNotice(draft *domain.BookingDraft, itemType domain.ItemType, now time.Time) error {
	startTime := draft.StartTimeOfDay(itemType)
	if startTime.IsZero() {
		return ErrTimeRequired
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInternal, err)
	}

	// Минимально допустимое время подачи/заселения сегодня
	minAllowed := now.Hour()*60 + now.Minute() + domain.MinSpontaneousNoticeMinutes

	// Если минимум выходит за пределы суток, сегодня бронировать уже поздно
	if minAllowed >= 24*60 {
		return fmt.Errorf("%w: no slot left today", ErrTooLateToBook)
	}

	if startMinutes < minAllowed {
		return fmt.Errorf("%w: earliest allowed time is %02d:%02d",
			ErrTooLateToBook, minAllowed/60, minAllowed%60)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравниваются только даты, время обнуляется
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}
