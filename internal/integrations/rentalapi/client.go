package rentalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RentalWizard/pkg/authctx"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver интерфейс для метрик исходящих запросов (опционален)
type MetricsObserver interface {
	ObserveUpstreamRequest(upstream, operation string, status int, duration time.Duration)
}

const upstreamName = "rental_api"

// Client клиент для работы с внешним Rental API
// Все вызовы ограничены rate-лимитером и таймаутом httpClient из конфигурации
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
	metrics    MetricsObserver // может быть nil
}

// NewClient создает новый экземпляр клиента Rental API
func NewClient(baseURL string, timeout time.Duration, rps float64, log Logger, metrics MetricsObserver) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		log:     log,
		metrics: metrics,
	}
}

// GetVehicle получает автомобиль из каталога
func (c *Client) GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error) {
	var vehicle Vehicle
	path := fmt.Sprintf("/vehicles/%s", url.PathEscape(vehicleID))
	if err := c.getJSON(ctx, "get_vehicle", path, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetApartment получает квартиру из каталога
func (c *Client) GetApartment(ctx context.Context, apartmentID string) (*Apartment, error) {
	var apartment Apartment
	path := fmt.Sprintf("/apartments/%s", url.PathEscape(apartmentID))
	if err := c.getJSON(ctx, "get_apartment", path, &apartment); err != nil {
		return nil, err
	}
	return &apartment, nil
}

// CheckAvailability проверяет доступность объекта на период
// Один сетевой вызов без ретраев: любая ошибка транспорта или не-2xx ответ
// превращается в ErrAvailabilityCheckFailed
func (c *Client) CheckAvailability(ctx context.Context, itemType, itemID, startISO, endISO string) (*AvailabilityResponse, error) {
	path := fmt.Sprintf("/%ss/%s/availability?start=%s&end=%s",
		itemType, url.PathEscape(itemID), url.QueryEscape(startISO), url.QueryEscape(endISO))

	resp, err := c.do(ctx, "check_availability", http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityCheckFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrItemNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrAvailabilityCheckFailed, resp.StatusCode, string(body))
	}

	var result AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrAvailabilityCheckFailed, err)
	}
	return &result, nil
}

// CreateReservation создает бронирование
// idempotencyKey отправляется в заголовке Idempotency-Key: повторная отправка
// с тем же ключом не должна создавать дубликат на стороне бэкенда
func (c *Client) CreateReservation(ctx context.Context, itemType string, idempotencyKey string, req *CreateReservationRequest) (*Reservation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	path := fmt.Sprintf("/reservations/%ss", itemType)
	httpReq, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.execute(ctx, "create_reservation", httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		// Пробрасываем сообщение сервера, если оно есть в ответе
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrReservationFailed, errResp.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrReservationFailed, resp.StatusCode, string(raw))
	}

	var reservation Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &reservation, nil
}

// GetReservation получает бронирование по ID
func (c *Client) GetReservation(ctx context.Context, reservationID string) (*Reservation, error) {
	path := fmt.Sprintf("/reservations/%s", url.PathEscape(reservationID))

	resp, err := c.do(ctx, "get_reservation", http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrReservationNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var reservation Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &reservation, nil
}

// ListUserReservations получает список бронирований пользователя
func (c *Client) ListUserReservations(ctx context.Context, userID int64) ([]*Reservation, error) {
	path := fmt.Sprintf("/reservations?userId=%d", userID)

	resp, err := c.do(ctx, "list_user_reservations", http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var reservations []*Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservations); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return reservations, nil
}

// getJSON выполняет GET запрос и декодирует 200 ответ в dst
func (c *Client) getJSON(ctx context.Context, operation, path string, dst interface{}) error {
	resp, err := c.do(ctx, operation, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrItemNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Прокидываем bearer-токен пользователя, если он есть в контексте
	if token, ok := authctx.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body io.Reader) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, operation, req)
}

func (c *Client) execute(ctx context.Context, operation string, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.metrics.ObserveUpstreamRequest(upstreamName, operation, status, time.Since(start))
	}
	return resp, err
}
