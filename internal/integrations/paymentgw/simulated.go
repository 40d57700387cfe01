package paymentgw

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RandSource источник случайности для симуляции исхода платежа
// Вынесен в интерфейс, чтобы тесты были детерминированными
type RandSource interface {
	Float64() float64
}

// lockedRand потокобезопасная обертка над math/rand
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// SimulatedGateway заглушка платежного шлюза: фиксированная задержка
// и случайный исход с настраиваемой вероятностью успеха.
// Это осознанная заглушка для окружений без реального провайдера,
// а не поведение, которое стоит нести в production
type SimulatedGateway struct {
	delay       time.Duration
	successRate float64
	rnd         RandSource
	log         Logger
}

// NewSimulatedGateway создает симулятор платежного шлюза
func NewSimulatedGateway(delay time.Duration, successRate float64, log Logger) *SimulatedGateway {
	return &SimulatedGateway{
		delay:       delay,
		successRate: successRate,
		rnd:         &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))},
		log:         log,
	}
}

// NewSimulatedGatewayWithSource создает симулятор с внешним источником
// случайности (для тестов)
func NewSimulatedGatewayWithSource(delay time.Duration, successRate float64, rnd RandSource, log Logger) *SimulatedGateway {
	return &SimulatedGateway{
		delay:       delay,
		successRate: successRate,
		rnd:         rnd,
		log:         log,
	}
}

// Process валидирует реквизиты и симулирует проведение платежа
func (g *SimulatedGateway) Process(ctx context.Context, req *Request) (*domain.PaymentOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.log.Info("SimulatedGateway: processing payment method=%s amount=%.2f %s",
		req.Method, req.Amount, req.Currency)

	// Имитация времени обработки у реального провайдера
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
	}

	if g.rnd.Float64() >= g.successRate {
		g.log.Warn("SimulatedGateway: payment declined method=%s amount=%.2f", req.Method, req.Amount)
		return nil, ErrPaymentDeclined
	}

	outcome := &domain.PaymentOutcome{
		Method:        req.Method,
		TransactionID: "SIM-" + uuid.NewString(),
		Amount:        req.Amount,
		Currency:      req.Currency,
	}

	g.log.Info("SimulatedGateway: payment succeeded method=%s tx=%s", req.Method, outcome.TransactionID)
	return outcome, nil
}
