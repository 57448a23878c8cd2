package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Passenger is value data owned by the booking that embeds it.
type Passenger struct {
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
}

type ContactInfo struct {
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// PaymentDetails is attached exactly once, when a booking is confirmed.
type PaymentDetails struct {
	Method        string    `json:"method" bson:"method"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	PaidAt        time.Time `json:"paidAt" bson:"paidAt"`
}

// Booking reserves len(Passengers) seats against one flight. Flight is a
// snapshot copied at creation time, not a live reference: later mutations of
// the flight record never change what an existing booking displays.
type Booking struct {
	ID             string          `json:"id" bson:"_id"`
	FlightID       string          `json:"flightId" bson:"flightId"`
	Flight         Flight          `json:"flight" bson:"flight"`
	Passengers     []Passenger     `json:"passengers" bson:"passengers"`
	ContactInfo    ContactInfo     `json:"contactInfo" bson:"contactInfo"`
	Status         BookingStatus   `json:"status" bson:"status"`
	TotalAmount    float64         `json:"totalAmount" bson:"totalAmount"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	PaymentDetails *PaymentDetails `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
}
