package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/avolkov/skyfare/internal/event"
)

// Sender delivers booking notifications. Like the payment gateway, the
// actual delivery is a simulation boundary: the message is logged instead
// of handed to an SMTP relay.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, ev event.BookingEvent) error {
	s.log.Info("sending booking email",
		zap.String("to", ev.Email),
		zap.String("type", ev.Type),
		zap.String("booking_id", ev.BookingID),
		zap.String("flight_id", ev.FlightID),
		zap.Int("seats", ev.Seats),
	)
	return nil
}
