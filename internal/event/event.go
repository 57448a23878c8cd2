// Package event publishes and consumes booking lifecycle events over Kafka.
package event

import "time"

const (
	TypeBookingCreated   = "booking_created"
	TypeBookingConfirmed = "booking_confirmed"
)

// BookingEvent is the JSON payload written to the bookings and
// notifications topics, keyed by booking id.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	FlightID    string    `json:"flight_id"`
	Seats       int       `json:"seats"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}
