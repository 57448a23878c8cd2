package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/event"
	"github.com/avolkov/skyfare/internal/metrics"
	"github.com/avolkov/skyfare/internal/storage"
)

type UseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// FlightsCache is the slice of the cache this service needs: dropping the
// cached list after a seat mutation. Nil is allowed.
type FlightsCache interface {
	InvalidateFlights(ctx context.Context) error
}

type Service struct {
	bookings           storage.BookingStore
	flights            storage.FlightStore
	cache              FlightsCache
	producer           Producer
	bookingsTopic      string
	notificationsTopic string
	log                *zap.Logger
}

type CreateBookingInput struct {
	FlightID    string             `json:"flightId"`
	Passengers  []domain.Passenger `json:"passengers"`
	ContactInfo domain.ContactInfo `json:"contactInfo"`
}

type Option func(*Service)

func WithProducer(producer Producer, bookingsTopic, notificationsTopic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.bookingsTopic = bookingsTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithFlightsCache(cache FlightsCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func NewService(bookings storage.BookingStore, flights storage.FlightStore, log *zap.Logger, opts ...Option) *Service {
	service := &Service{
		bookings: bookings,
		flights:  flights,
		log:      log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking reserves seats on a flight. The booking record is written
// first, then the inventory decrement; the decrement is a conditional write,
// so a concurrent race ends in ErrNotEnoughSeats instead of negative
// inventory. A storage failure between the two writes leaves the pending
// booking in place without compensation.
func (s *Service) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.FlightID == "" {
		return nil, errors.New("flightId is required")
	}
	if len(input.Passengers) == 0 {
		return nil, errors.New("at least one passenger is required")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	seats := len(input.Passengers)
	if flight.AvailableSeats < seats {
		metrics.BookingsRejected.Inc()
		return nil, domain.ErrNotEnoughSeats
	}

	booking := &domain.Booking{
		FlightID:    input.FlightID,
		Flight:      *flight,
		Passengers:  input.Passengers,
		ContactInfo: input.ContactInfo,
		TotalAmount: flight.Price * float64(seats),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.flights.DecrementSeats(ctx, input.FlightID, seats); err != nil {
		if errors.Is(err, domain.ErrNotEnoughSeats) {
			metrics.BookingsRejected.Inc()
		}
		s.log.Warn("seat decrement failed after booking insert",
			zap.String("booking_id", booking.ID),
			zap.String("flight_id", input.FlightID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.BookingsCreated.Inc()

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("flights cache invalidation failed", zap.Error(err))
		}
	}
	s.publish(ctx, event.TypeBookingCreated, booking)

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil {
		return
	}
	ev := event.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		FlightID:    booking.FlightID,
		Seats:       len(booking.Passengers),
		Email:       booking.ContactInfo.Email,
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
	for _, topic := range []string{s.bookingsTopic, s.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, booking.ID, ev); err != nil {
			s.log.Warn("publish booking event failed",
				zap.String("topic", topic),
				zap.String("type", eventType),
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

var _ UseCase = (*Service)(nil)
