package paymentgw

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// Gateway интерфейс платежного шлюза
// Реализации: SimulatedGateway (окружения без реального шлюза),
// в production сюда подключается адаптер реального провайдера
type Gateway interface {
	Process(ctx context.Context, req *Request) (*domain.PaymentOutcome, error)
}

// Request запрос на проведение платежа
// Набор обязательных полей зависит от класса способа оплаты:
// карты требуют реквизиты карты, мобильные кошельки — номер телефона
type Request struct {
	Method   domain.PaymentMethod
	Amount   float64
	Currency string

	// Карточные реквизиты
	CardNumber string
	CardHolder string
	CardExpiry string // MM/YY
	CardCVV    string

	// Мобильные кошельки
	PhoneNumber string
}

// Validate проверяет, что заполнены обязательные поля для выбранного
// класса способа оплаты. Вызывается до обращения к шлюзу
func (r *Request) Validate() error {
	switch {
	case r.Method.IsCard():
		if r.CardNumber == "" || r.CardHolder == "" || r.CardExpiry == "" || r.CardCVV == "" {
			return fmt.Errorf("%w: card number, holder, expiry and cvv are required for %s", ErrMissingFields, r.Method)
		}
	case r.Method.IsMobileMoney():
		if r.PhoneNumber == "" {
			return fmt.Errorf("%w: phone number is required for %s", ErrMissingFields, r.Method)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, r.Method)
	}

	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrMissingFields)
	}
	return nil
}
