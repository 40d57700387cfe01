package paymentgw

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixedRand детерминированный источник случайности
type fixedRand struct {
	value float64
}

func (f *fixedRand) Float64() float64 {
	return f.value
}

func cardRequest() *Request {
	return &Request{
		Method:     domain.PaymentVisa,
		Amount:     45000,
		Currency:   "XOF",
		CardNumber: "4111111111111111",
		CardHolder: "AMADOU DIALLO",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
}

func TestProcess_Success(t *testing.T) {
	gw := NewSimulatedGatewayWithSource(0, 0.9, &fixedRand{value: 0.5}, nopLogger{})

	outcome, err := gw.Process(context.Background(), cardRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVisa, outcome.Method)
	assert.Equal(t, 45000.0, outcome.Amount)
	assert.Equal(t, "XOF", outcome.Currency)
	assert.True(t, strings.HasPrefix(outcome.TransactionID, "SIM-"))
}

func TestProcess_Declined(t *testing.T) {
	// 0.95 >= 0.9: симуляция отказа провайдера
	gw := NewSimulatedGatewayWithSource(0, 0.9, &fixedRand{value: 0.95}, nopLogger{})

	_, err := gw.Process(context.Background(), cardRequest())

	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestProcess_CancelledContext(t *testing.T) {
	gw := NewSimulatedGatewayWithSource(time.Second, 0.9, &fixedRand{value: 0.5}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Process(ctx, cardRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:   "valid card",
			mutate: func(*Request) {},
		},
		{
			name: "card without cvv",
			mutate: func(r *Request) {
				r.CardCVV = ""
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "mobile money with phone",
			mutate: func(r *Request) {
				r.Method = domain.PaymentMPesa
				r.PhoneNumber = "+254700000000"
			},
		},
		{
			name: "mobile money without phone",
			mutate: func(r *Request) {
				r.Method = domain.PaymentOrangeMoney
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "unknown method",
			mutate: func(r *Request) {
				r.Method = "BITCOIN"
			},
			wantErr: ErrUnknownMethod,
		},
		{
			name: "zero amount",
			mutate: func(r *Request) {
				r.Amount = 0
			},
			wantErr: ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cardRequest()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
