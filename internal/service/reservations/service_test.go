package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/internal/integrations/rentalapi"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRentalClient struct {
	reservation *rentalapi.Reservation
	list        []*rentalapi.Reservation
	err         error

	listCalls int
}

func (c *fakeRentalClient) GetReservation(_ context.Context, _ string) (*rentalapi.Reservation, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.reservation, nil
}

func (c *fakeRentalClient) ListUserReservations(_ context.Context, _ int64) ([]*rentalapi.Reservation, error) {
	c.listCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.list, nil
}

func TestGetByID(t *testing.T) {
	client := &fakeRentalClient{reservation: &rentalapi.Reservation{
		ID:              "res-1",
		ItemID:          "car-7",
		ItemType:        "vehicle",
		ReservationType: "DIFFEREE",
		StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		NumberOfDays:    3,
		TotalPrice:      45000,
		Currency:        "XOF",
		Status:          "confirmed",
	}}
	svc := NewService(client, nopLogger{})

	resp, err := svc.GetByID(context.Background(), "res-1")

	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ID)
	assert.Equal(t, "2026-03-10", resp.StartDate)
	assert.Equal(t, 45000.0, resp.TotalPrice)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	client := &fakeRentalClient{err: rentalapi.ErrReservationNotFound}
	svc := NewService(client, nopLogger{})

	_, err := svc.GetByID(context.Background(), "res-404")

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_EmptyID(t *testing.T) {
	svc := NewService(&fakeRentalClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByUser(t *testing.T) {
	client := &fakeRentalClient{list: []*rentalapi.Reservation{
		{ID: "res-1"},
		{ID: "res-2"},
	}}
	svc := NewService(client, nopLogger{})

	resp, err := svc.ListByUser(context.Background(), 42, 42)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "res-1", resp.Reservations[0].ID)
}

func TestListByUser_ForeignUserDenied(t *testing.T) {
	client := &fakeRentalClient{}
	svc := NewService(client, nopLogger{})

	_, err := svc.ListByUser(context.Background(), 42, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
	// До Rental API запрос не дошел
	assert.Equal(t, 0, client.listCalls)
}
