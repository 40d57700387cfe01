package submit_payment

import "github.com/m04kA/SMC-RentalWizard/internal/domain"

// Request модель запроса на оплату и коммит бронирования
type Request struct {
	SessionID string
	UserID    int64

	Method string // способ оплаты (VISA, MASTERCARD, ORANGE_MONEY, MPESA, AIRTEL_MONEY)

	// Карточные реквизиты
	CardNumber string
	CardHolder string
	CardExpiry string // MM/YY
	CardCVV    string

	// Мобильные кошельки
	PhoneNumber string
}

// Response модель результата: сессия на шаге подтверждения
// с созданным бронированием и проведенным платежом
type Response struct {
	Session *domain.WizardSession
	Outcome *domain.PaymentOutcome
}
