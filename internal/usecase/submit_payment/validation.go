package submit_payment

import (
	"fmt"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionId is required", ErrInternal)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInternal)
	}
	if req.Method == "" {
		return fmt.Errorf("%w: payment method is required", ErrPaymentValidation)
	}
	return nil
}

// buildPaymentRequest собирает запрос к платежному шлюзу из данных сессии
// Сумма берется из черновика, не из запроса: клиент не может оплатить
// сумму, отличную от рассчитанной визардом
func buildPaymentRequest(sess *domain.WizardSession, req *Request) (*paymentgw.Request, error) {
	payment := &paymentgw.Request{
		Method:      domain.PaymentMethod(req.Method),
		Amount:      sess.Draft.TotalPrice,
		Currency:    sess.Currency,
		CardNumber:  req.CardNumber,
		CardHolder:  req.CardHolder,
		CardExpiry:  req.CardExpiry,
		CardCVV:     req.CardCVV,
		PhoneNumber: req.PhoneNumber,
	}

	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentValidation, err)
	}
	return payment, nil
}

// assemblePayload собирает финальный payload бронирования
// Типоспецифичные поля заполняются по типу объекта сессии
func assemblePayload(sess *domain.WizardSession, outcome *domain.PaymentOutcome) *rentalapi.CreateReservationRequest {
	draft := &sess.Draft

	payload := &rentalapi.CreateReservationRequest{
		ItemID:          sess.ItemID,
		ReservationType: string(draft.ReservationType),
		StartDate:       draft.StartDate.Format(domain.DateFormat),
		EndDate:         draft.EndDate.Format(domain.DateFormat),
		SpecialRequests: draft.SpecialRequests,
		NumberOfDays:    draft.NumberOfDays,
		TotalPrice:      draft.TotalPrice,
		Payment: rentalapi.PaymentInfo{
			Method:        string(outcome.Method),
			TransactionID: outcome.TransactionID,
			Amount:        outcome.Amount,
		},
	}

	switch sess.ItemType {
	case domain.ItemTypeVehicle:
		payload.PickupTime = draft.PickupTime.String()
		payload.AdditionalDrivers = draft.AdditionalDrivers
		payload.PickupLocation = draft.PickupLocation
		payload.DropoffLocation = draft.DropoffLocation
	case domain.ItemTypeApartment:
		payload.EntryTime = draft.EntryTime.String()
		payload.NumberOfGuests = draft.NumberOfGuests
	}

	return payload
}
