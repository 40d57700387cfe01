package submit_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalWizard/internal/api/handlers"
	"github.com/m04kA/SMC-RentalWizard/internal/api/middleware"
	submitPayment "github.com/m04kA/SMC-RentalWizard/internal/usecase/submit_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия визарда не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgWrongStep          = "оплата возможна только на шаге оплаты"
	msgPaymentValidation  = "не заполнены реквизиты для выбранного способа оплаты"
	msgPaymentFailed      = "платеж отклонен, попробуйте еще раз"
	msgReservationFailed  = "не удалось создать бронирование, платеж проведен - попробуйте отправить снова"
)

type Handler struct {
	useCase SubmitPaymentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/{sessionId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID, userID))
	if err != nil {
		switch {
		case errors.Is(err, submitPayment.ErrPaymentValidation):
			h.logger.Warn("POST /wizard/{id}/payment - Payment validation failed: session_id=%s, method=%s",
				sessionID, req.Method)
			handlers.RespondBadRequest(w, msgPaymentValidation)

		case errors.Is(err, submitPayment.ErrPaymentFailed):
			h.logger.Warn("POST /wizard/{id}/payment - Payment declined: session_id=%s, method=%s",
				sessionID, req.Method)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, submitPayment.ErrReservationFailed):
			h.logger.Error("POST /wizard/{id}/payment - Reservation failed: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgReservationFailed)

		case errors.Is(err, submitPayment.ErrWrongStep):
			h.logger.Warn("POST /wizard/{id}/payment - Wrong step: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgWrongStep)

		case errors.Is(err, submitPayment.ErrSessionNotFound),
			errors.Is(err, submitPayment.ErrSessionClosed):
			h.logger.Warn("POST /wizard/{id}/payment - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitPayment.ErrAccessDenied):
			h.logger.Warn("POST /wizard/{id}/payment - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /wizard/{id}/payment - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /wizard/{id}/payment - Reservation committed: session_id=%s, user_id=%d, reservation_id=%s",
		sessionID, userID, result.Session.Reservation.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
