package rentalapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/pkg/authctx"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 100, nopLogger{}, nil)
}

func TestGetVehicle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles/car-7", r.URL.Path)
		json.NewEncoder(w).Encode(Vehicle{
			ID: "car-7", Brand: "Toyota", Model: "Corolla", PricePerDay: 15000, Currency: "XOF",
		})
	})

	vehicle, err := client.GetVehicle(context.Background(), "car-7")

	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla", vehicle.DisplayName())
	assert.Equal(t, 15000.0, vehicle.PricePerDay)
}

func TestGetVehicle_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetVehicle(context.Background(), "car-404")

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCheckAvailability_ReasonPassedThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles/car-7/availability", r.URL.Path)
		assert.Equal(t, "2026-03-10", r.URL.Query().Get("start"))
		assert.Equal(t, "2026-03-13", r.URL.Query().Get("end"))
		json.NewEncoder(w).Encode(AvailabilityResponse{
			Available: false,
			Reason:    "Véhicule déjà réservé sur cette période",
		})
	})

	resp, err := client.CheckAvailability(context.Background(), "vehicle", "car-7", "2026-03-10", "2026-03-13")

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "Véhicule déjà réservé sur cette période", resp.Reason)
}

func TestCheckAvailability_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CheckAvailability(context.Background(), "vehicle", "car-7", "2026-03-10", "2026-03-13")

	assert.ErrorIs(t, err, ErrAvailabilityCheckFailed)
}

func TestCheckAvailability_ItemNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.CheckAvailability(context.Background(), "vehicle", "car-404", "2026-03-10", "2026-03-13")

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateReservation_SendsIdempotencyKeyAndToken(t *testing.T) {
	var gotKey, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reservations/vehicles", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Reservation{ID: "res-1", Status: "confirmed"})
	})

	ctx := authctx.WithToken(context.Background(), "user-token")
	reservation, err := client.CreateReservation(ctx, "vehicle", "idem-key-1", &CreateReservationRequest{
		ItemID: "car-7",
	})

	require.NoError(t, err)
	assert.Equal(t, "res-1", reservation.ID)
	assert.Equal(t, "idem-key-1", gotKey)
	assert.Equal(t, "Bearer user-token", gotAuth)
}

func TestCreateReservation_ServerMessagePassedThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ErrorResponse{Code: 409, Message: "véhicule déjà réservé"})
	})

	_, err := client.CreateReservation(context.Background(), "vehicle", "idem-key-1", &CreateReservationRequest{})

	require.ErrorIs(t, err, ErrReservationFailed)
	assert.Contains(t, err.Error(), "véhicule déjà réservé")
}

func TestGetReservation_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetReservation(context.Background(), "res-404")

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListUserReservations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("userId"))
		json.NewEncoder(w).Encode([]*Reservation{
			{ID: "res-1"},
			{ID: "res-2"},
		})
	})

	reservations, err := client.ListUserReservations(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, "res-1", reservations[0].ID)
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetVehicle(context.Background(), "car-7")

	assert.ErrorIs(t, err, ErrUnauthorized)
}
