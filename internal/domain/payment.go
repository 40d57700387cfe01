package domain

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentVisa        PaymentMethod = "VISA"
	PaymentMastercard  PaymentMethod = "MASTERCARD"
	PaymentOrangeMoney PaymentMethod = "ORANGE_MONEY"
	PaymentMPesa       PaymentMethod = "MPESA"
	PaymentAirtelMoney PaymentMethod = "AIRTEL_MONEY"
)

// IsValid возвращает true для известного способа оплаты
func (m PaymentMethod) IsValid() bool {
	return m.IsCard() || m.IsMobileMoney()
}

// IsCard возвращает true для карточных способов оплаты
// Карточные способы требуют номер карты, имя держателя, срок действия и CVV
func (m PaymentMethod) IsCard() bool {
	return m == PaymentVisa || m == PaymentMastercard
}

// IsMobileMoney возвращает true для мобильных кошельков
// Мобильные кошельки требуют только номер телефона
func (m PaymentMethod) IsMobileMoney() bool {
	return m == PaymentOrangeMoney || m == PaymentMPesa || m == PaymentAirtelMoney
}

// PaymentOutcome результат успешной обработки платежа
type PaymentOutcome struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transactionId"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
}
