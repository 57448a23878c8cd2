package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

func TestFlightStore_SeedAndReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFlightStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SeedIfEmpty(ctx, storage.SampleFlights(time.Now())))

	require.NoError(t, s.DecrementSeats(ctx, "2", 2))

	// A fresh store over the same directory sees the mutated state and the
	// seed stays idempotent.
	reopened, err := NewFlightStore(dir)
	require.NoError(t, err)
	require.NoError(t, reopened.SeedIfEmpty(ctx, storage.SampleFlights(time.Now())))

	f, err := reopened.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 30, f.AvailableSeats)

	data, err := os.ReadFile(filepath.Join(dir, "flights.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sky Express")
}

func TestFlightStore_DecrementSeats_Conditional(t *testing.T) {
	ctx := context.Background()
	s, err := NewFlightStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.SeedIfEmpty(ctx, []domain.Flight{{ID: "f1", AvailableSeats: 3}}))

	assert.ErrorIs(t, s.DecrementSeats(ctx, "f1", 4), domain.ErrNotEnoughSeats)
	assert.ErrorIs(t, s.DecrementSeats(ctx, "nope", 1), domain.ErrFlightNotFound)

	// The refused decrement must not have touched the file.
	f, err := s.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 3, f.AvailableSeats)
}

func TestFlightStore_List_Filters(t *testing.T) {
	ctx := context.Background()
	s, err := NewFlightStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.SeedIfEmpty(ctx, storage.SampleFlights(time.Now())))

	result, err := s.List(ctx, domain.FlightFilter{Origin: "paris"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "EW501", result[0].FlightNumber)
}

func TestBookingStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewBookingStore(dir)
	require.NoError(t, err)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	b := &domain.Booking{
		FlightID:    "1",
		Passengers:  []domain.Passenger{{FirstName: "Grace"}, {FirstName: "Alan"}},
		TotalAmount: 1300,
	}
	require.NoError(t, s.Create(ctx, b))
	require.NotEmpty(t, b.ID)

	updated, err := s.UpdateStatus(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed,
		&domain.PaymentDetails{Method: "card", TransactionID: "txn-9", PaidAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)

	_, err = s.UpdateStatus(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	// Confirmed state survives a reopen.
	reopened, err := NewBookingStore(dir)
	require.NoError(t, err)
	got, err := reopened.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
	require.NotNil(t, got.PaymentDetails)
	assert.Equal(t, "txn-9", got.PaymentDetails.TransactionID)
	assert.Len(t, got.Passengers, 2)
}
