package storage

import (
	"time"

	"github.com/avolkov/skyfare/internal/domain"
)

// SampleFlights returns the fixed demo inventory used to seed an empty
// store. Every flight departs on the given day.
func SampleFlights(now time.Time) []domain.Flight {
	date := now.Format("2006-01-02")
	return []domain.Flight{
		{
			ID:             "1",
			Airline:        "Air Global",
			FlightNumber:   "AG101",
			Origin:         "New York",
			Destination:    "London",
			DepartureTime:  "08:00",
			ArrivalTime:    "20:30",
			Duration:       "7h 30m",
			Price:          650,
			AvailableSeats: 45,
			Date:           date,
		},
		{
			ID:             "2",
			Airline:        "Sky Express",
			FlightNumber:   "SE205",
			Origin:         "New York",
			Destination:    "London",
			DepartureTime:  "14:30",
			ArrivalTime:    "02:00",
			Duration:       "7h 30m",
			Price:          720,
			AvailableSeats: 32,
			Date:           date,
		},
		{
			ID:             "3",
			Airline:        "Air Global",
			FlightNumber:   "AG302",
			Origin:         "London",
			Destination:    "Paris",
			DepartureTime:  "10:15",
			ArrivalTime:    "11:45",
			Duration:       "1h 30m",
			Price:          180,
			AvailableSeats: 120,
			Date:           date,
		},
		{
			ID:             "4",
			Airline:        "Pacific Airlines",
			FlightNumber:   "PA401",
			Origin:         "Los Angeles",
			Destination:    "Tokyo",
			DepartureTime:  "11:00",
			ArrivalTime:    "15:30",
			Duration:       "11h 30m",
			Price:          950,
			AvailableSeats: 28,
			Date:           date,
		},
		{
			ID:             "5",
			Airline:        "EuroWings",
			FlightNumber:   "EW501",
			Origin:         "Paris",
			Destination:    "Rome",
			DepartureTime:  "09:00",
			ArrivalTime:    "11:15",
			Duration:       "2h 15m",
			Price:          220,
			AvailableSeats: 85,
			Date:           date,
		},
	}
}
