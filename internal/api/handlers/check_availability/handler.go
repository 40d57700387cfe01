package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalWizard/internal/api/handlers"
	"github.com/m04kA/SMC-RentalWizard/internal/api/middleware"
	checkAvailability "github.com/m04kA/SMC-RentalWizard/internal/usecase/check_availability"
)

const (
	msgSessionNotFound    = "сессия визарда не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgWrongStep          = "проверка доступности возможна только на шаге выбора дат"
	msgDatesRequired      = "не заполнены даты бронирования"
	msgInvalidDateRange   = "дата окончания должна быть позже даты начала"
	msgDateInPast         = "дата начала не может быть в прошлом"
	msgTimeRequired       = "не указано время начала для спонтанного бронирования"
	msgTooLateToBook      = "до начала спонтанного бронирования должно оставаться не менее 6 часов"
	msgItemNotFound       = "объект аренды не найден"
	msgAvailabilityFailed = "сервис доступности временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/{sessionId}/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/{id}/check-availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrDatesRequired):
			h.logger.Warn("POST /wizard/{id}/check-availability - Dates required: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgDatesRequired)

		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			h.logger.Warn("POST /wizard/{id}/check-availability - Invalid date range: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrDateInPast):
			h.logger.Warn("POST /wizard/{id}/check-availability - Date in past: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, checkAvailability.ErrTimeRequired):
			h.logger.Warn("POST /wizard/{id}/check-availability - Start time required: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgTimeRequired)

		case errors.Is(err, checkAvailability.ErrTooLateToBook):
			h.logger.Warn("POST /wizard/{id}/check-availability - Too late to book: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, checkAvailability.ErrWrongStep):
			h.logger.Warn("POST /wizard/{id}/check-availability - Wrong step: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgWrongStep)

		case errors.Is(err, checkAvailability.ErrSessionNotFound),
			errors.Is(err, checkAvailability.ErrSessionClosed):
			h.logger.Warn("POST /wizard/{id}/check-availability - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, checkAvailability.ErrAccessDenied):
			h.logger.Warn("POST /wizard/{id}/check-availability - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkAvailability.ErrItemNotFound):
			h.logger.Warn("POST /wizard/{id}/check-availability - Item not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, checkAvailability.ErrAvailabilityCheckFailed):
			h.logger.Error("POST /wizard/{id}/check-availability - Availability check failed: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgAvailabilityFailed)

		default:
			h.logger.Error("POST /wizard/{id}/check-availability - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Даты заняты: сессия остается на шаге выбора дат, причина отдается клиенту
	if !result.Available {
		h.logger.Info("POST /wizard/{id}/check-availability - Not available: session_id=%s, reason=%s",
			sessionID, result.Reason)
		handlers.RespondJSON(w, http.StatusConflict, response)
		return
	}

	h.logger.Info("POST /wizard/{id}/check-availability - Available, moved to payment step: session_id=%s, user_id=%d",
		sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
