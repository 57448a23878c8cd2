package domain

import "errors"

// Error taxonomy surfaced to API clients. Messages are part of the public
// contract and must not change.
var (
	ErrFlightNotFound   = errors.New("Flight not found")
	ErrBookingNotFound  = errors.New("Booking not found")
	ErrNotEnoughSeats   = errors.New("Not enough seats available")
	ErrAlreadyProcessed = errors.New("Booking already processed")
)
