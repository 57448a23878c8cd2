package storage

import (
	"context"

	"github.com/avolkov/skyfare/internal/domain"
)

// FlightStore is the inventory side of the storage port. DecrementSeats is a
// conditional write: the adapter must refuse the mutation atomically when
// fewer than count seats remain, so availableSeats can never go negative
// even under concurrent bookings.
type FlightStore interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	DecrementSeats(ctx context.Context, id string, count int) error
	SeedIfEmpty(ctx context.Context, flights []domain.Flight) error
}

// BookingStore persists booking records. UpdateStatus is a compare-and-swap
// on the status field: it fails with domain.ErrAlreadyProcessed when the
// current status is not `from`, which is the sole guard against double
// payment confirmation.
type BookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error)
}
