package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/event"
	"github.com/avolkov/skyfare/internal/metrics"
	"github.com/avolkov/skyfare/internal/storage"
)

type UseCase interface {
	ProcessPayment(ctx context.Context, bookingID string, input PaymentInput) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// PaymentInput carries what the client submits. Only the method survives
// into the stored payment details; no gateway is ever called.
type PaymentInput struct {
	Method string `json:"method"`
}

type Service struct {
	bookings           storage.BookingStore
	producer           Producer
	bookingsTopic      string
	notificationsTopic string
	log                *zap.Logger
}

type Option func(*Service)

func WithProducer(producer Producer, bookingsTopic, notificationsTopic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.bookingsTopic = bookingsTopic
		s.notificationsTopic = notificationsTopic
	}
}

func NewService(bookings storage.BookingStore, log *zap.Logger, opts ...Option) *Service {
	service := &Service{bookings: bookings, log: log}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ProcessPayment confirms a pending booking. The compare-and-swap in the
// store is the idempotency guard: two concurrent calls cannot both pass it,
// so exactly one transaction id is ever attached. Once the guard passes the
// charge always succeeds, simulating the gateway.
func (s *Service) ProcessPayment(ctx context.Context, bookingID string, input PaymentInput) (*domain.Booking, error) {
	if input.Method == "" {
		return nil, errors.New("payment method is required")
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		metrics.PaymentsDuplicate.Inc()
		return nil, domain.ErrAlreadyProcessed
	}

	details := &domain.PaymentDetails{
		Method:        input.Method,
		TransactionID: uuid.NewString(),
		PaidAt:        time.Now().UTC(),
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed, details)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			metrics.PaymentsDuplicate.Inc()
		}
		return nil, err
	}

	metrics.PaymentsProcessed.Inc()
	s.publish(ctx, updated)

	return updated, nil
}

func (s *Service) publish(ctx context.Context, booking *domain.Booking) {
	if s.producer == nil {
		return
	}
	ev := event.BookingEvent{
		Type:        event.TypeBookingConfirmed,
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
			s.log.Warn("publish payment event failed",
				zap.String("topic", topic),
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

var _ UseCase = (*Service)(nil)
