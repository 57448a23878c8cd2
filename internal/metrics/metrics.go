package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_bookings_created_total",
		Help: "Bookings successfully created.",
	})

	BookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_bookings_rejected_total",
		Help: "Booking attempts rejected for insufficient seats.",
	})

	PaymentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_payments_processed_total",
		Help: "Payments confirmed.",
	})

	PaymentsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_payments_duplicate_total",
		Help: "Payment attempts rejected because the booking was already processed.",
	})
)
