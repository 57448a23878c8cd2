// Package memory holds both stores in process memory. It is the default
// backend for tests and local runs; all mutations are serialized through a
// single mutex, which makes the conditional writes trivially atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

type FlightStore struct {
	mu      sync.RWMutex
	order   []string
	flights map[string]domain.Flight
}

func NewFlightStore() *FlightStore {
	return &FlightStore{flights: make(map[string]domain.Flight)}
}

func (s *FlightStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Flight, 0, len(s.order))
	for _, id := range s.order {
		f := s.flights[id]
		if storage.MatchesFilter(f, filter) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FlightStore) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flights[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return &f, nil
}

func (s *FlightStore) DecrementSeats(ctx context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return domain.ErrFlightNotFound
	}
	if f.AvailableSeats < count {
		return domain.ErrNotEnoughSeats
	}
	f.AvailableSeats -= count
	s.flights[id] = f
	return nil
}

func (s *FlightStore) SeedIfEmpty(ctx context.Context, flights []domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.flights) > 0 {
		return nil
	}
	for _, f := range flights {
		s.order = append(s.order, f.ID)
		s.flights[f.ID] = f
	}
	return nil
}

type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]domain.Booking)}
}

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC()
	booking.Status = domain.BookingStatusPending
	s.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := cloneBooking(b)
	return &out, nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, domain.ErrAlreadyProcessed
	}
	b.Status = to
	if payment != nil {
		pd := *payment
		b.PaymentDetails = &pd
	}
	s.bookings[id] = b
	out := cloneBooking(b)
	return &out, nil
}

// cloneBooking deep-copies the slices and the payment pointer so callers
// can never mutate stored state through a returned booking.
func cloneBooking(b domain.Booking) domain.Booking {
	passengers := make([]domain.Passenger, len(b.Passengers))
	copy(passengers, b.Passengers)
	b.Passengers = passengers
	if b.PaymentDetails != nil {
		pd := *b.PaymentDetails
		b.PaymentDetails = &pd
	}
	return b
}

var (
	_ storage.FlightStore  = (*FlightStore)(nil)
	_ storage.BookingStore = (*BookingStore)(nil)
)
