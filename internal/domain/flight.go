package domain

// Flight is a seat-inventory record for a single scheduled departure.
// Departure/arrival times and duration are display strings, matching the
// storefront data model; Date is a calendar date in YYYY-MM-DD form.
type Flight struct {
	ID             string  `json:"id" bson:"_id"`
	Airline        string  `json:"airline" bson:"airline"`
	FlightNumber   string  `json:"flightNumber" bson:"flightNumber"`
	Origin         string  `json:"origin" bson:"origin"`
	Destination    string  `json:"destination" bson:"destination"`
	DepartureTime  string  `json:"departureTime" bson:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime" bson:"arrivalTime"`
	Duration       string  `json:"duration" bson:"duration"`
	Price          float64 `json:"price" bson:"price"`
	AvailableSeats int     `json:"availableSeats" bson:"availableSeats"`
	Date           string  `json:"date" bson:"date"`
}

// FlightFilter narrows a flight listing. Origin and Destination are matched
// as case-insensitive substrings, Date as an exact calendar date. Zero
// values mean no restriction.
type FlightFilter struct {
	Origin      string
	Destination string
	Date        string
}

// Empty reports whether the filter places no restriction at all.
func (f FlightFilter) Empty() bool {
	return f.Origin == "" && f.Destination == "" && f.Date == ""
}
