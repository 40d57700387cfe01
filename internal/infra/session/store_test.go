package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalWizard/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Hour), mr
}

func testSession() *domain.WizardSession {
	return &domain.WizardSession{
		ID:       "sess-1",
		UserID:   42,
		ItemType: domain.ItemTypeVehicle,
		ItemID:   "car-7",
		ItemName: "Toyota Corolla",
		UnitRate: 15000,
		Currency: "XOF",
		Step:     domain.StepDates,
		Draft: domain.BookingDraft{
			ReservationType: domain.ReservationDeferred,
		},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession()))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, domain.ItemTypeVehicle, got.ItemType)
	assert.Equal(t, 15000.0, got.UnitRate)
	assert.Equal(t, domain.StepDates, got.Step)

	// TTL выставлен
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"sess-1"))
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SaveExisting(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, store.Create(ctx, sess))

	sess.Step = domain.StepPayment
	require.NoError(t, store.SaveExisting(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, got.Step)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStore_SaveExisting_ClosedSessionDiscarded(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, store.Create(ctx, sess))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	// SET XX на удаленном ключе не создает его заново
	sess.Step = domain.StepPayment
	assert.ErrorIs(t, store.SaveExisting(ctx, sess), ErrSessionNotFound)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession()))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestStore_SessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testSession()))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
