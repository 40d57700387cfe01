package submit_payment

import (
	"github.com/m04kA/SMC-RentalWizard/internal/service/wizard/models"
	submitPayment "github.com/m04kA/SMC-RentalWizard/internal/usecase/submit_payment"
)

// SubmitPaymentRequest HTTP request model
// Карточные поля обязательны для VISA/MASTERCARD, номер телефона
// для мобильных кошельков
type SubmitPaymentRequest struct {
	Method string `json:"method"`

	CardNumber string `json:"cardNumber,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"` // MM/YY
	CardCVV    string `json:"cardCvv,omitempty"`

	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// PaymentOutcomeResponse проведенный платеж в составе ответа
type PaymentOutcomeResponse struct {
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// SubmitPaymentResponse HTTP response model
type SubmitPaymentResponse struct {
	Session *models.WizardResponse  `json:"session"`
	Payment *PaymentOutcomeResponse `json:"payment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitPaymentRequest) ToUseCaseRequest(sessionID string, userID int64) *submitPayment.Request {
	return &submitPayment.Request{
		SessionID:   sessionID,
		UserID:      userID,
		Method:      r.Method,
		CardNumber:  r.CardNumber,
		CardHolder:  r.CardHolder,
		CardExpiry:  r.CardExpiry,
		CardCVV:     r.CardCVV,
		PhoneNumber: r.PhoneNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitPayment.Response) *SubmitPaymentResponse {
	return &SubmitPaymentResponse{
		Session: models.FromDomainSession(resp.Session),
		Payment: &PaymentOutcomeResponse{
			Method:        string(resp.Outcome.Method),
			TransactionID: resp.Outcome.TransactionID,
			Amount:        resp.Outcome.Amount,
			Currency:      resp.Outcome.Currency,
		},
	}
}
