package paymentgw

import "errors"

var (
	// ErrMissingFields возвращается, когда для выбранного способа оплаты
	// не заполнены обязательные поля
	ErrMissingFields = errors.New("paymentgw: required payment fields are missing")

	// ErrUnknownMethod возвращается при неизвестном способе оплаты
	ErrUnknownMethod = errors.New("paymentgw: unknown payment method")

	// ErrPaymentDeclined возвращается при отказе шлюза провести платеж
	ErrPaymentDeclined = errors.New("paymentgw: payment declined")

	// ErrInternal возвращается при внутренних ошибках шлюза
	ErrInternal = errors.New("paymentgw: internal error")
)
