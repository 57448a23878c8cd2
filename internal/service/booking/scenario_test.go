package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/service/booking"
	"github.com/avolkov/skyfare/internal/service/payment"
	"github.com/avolkov/skyfare/internal/storage/memory"
)

// Full lifecycle against the in-memory backend: book until the flight is
// sold out, pay once, then verify the idempotency guard.
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	flightStore := memory.NewFlightStore()
	bookingStore := memory.NewBookingStore()
	require.NoError(t, flightStore.SeedIfEmpty(ctx, []domain.Flight{{
		ID:             "1",
		Airline:        "Air Global",
		FlightNumber:   "AG101",
		Origin:         "New York",
		Destination:    "London",
		Price:          650,
		AvailableSeats: 2,
		Date:           "2026-09-01",
	}}))

	bookingSvc := booking.NewService(bookingStore, flightStore, zap.NewNop())
	paymentSvc := payment.NewService(bookingStore, zap.NewNop())

	created, err := bookingSvc.CreateBooking(ctx, booking.CreateBookingInput{
		FlightID: "1",
		Passengers: []domain.Passenger{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
		},
		ContactInfo: domain.ContactInfo{Email: "ada@example.com", Phone: "555-0100"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1300.0, created.TotalAmount)
	assert.Equal(t, domain.BookingStatusPending, created.Status)

	flight, err := flightStore.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, flight.AvailableSeats)

	// Sold out: one more passenger cannot book.
	_, err = bookingSvc.CreateBooking(ctx, booking.CreateBookingInput{
		FlightID:   "1",
		Passengers: []domain.Passenger{{FirstName: "Grace", LastName: "Hopper"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotEnoughSeats)
	assert.EqualError(t, err, "Not enough seats available")

	// The stored booking's snapshot reflects creation time, not the
	// decremented inventory.
	fetched, err := bookingSvc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Flight.AvailableSeats)
	assert.Equal(t, 650.0, fetched.Flight.Price)

	confirmed, err := paymentSvc.ProcessPayment(ctx, created.ID, payment.PaymentInput{Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.PaymentDetails)
	assert.NotEmpty(t, confirmed.PaymentDetails.TransactionID)

	_, err = paymentSvc.ProcessPayment(ctx, created.ID, payment.PaymentInput{Method: "card"})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.EqualError(t, err, "Booking already processed")

	// The original transaction survives the duplicate attempt.
	final, err := bookingSvc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmed.PaymentDetails.TransactionID, final.PaymentDetails.TransactionID)
}
