package domain

import (
	"strings"
	"time"
)

type Flight struct {
	ID                int64     `json:"id"`
	FlightCode        string    `json:"flight_code"`
	AirlineName       string    `json:"airline_name"`
	OriginCity        string    `json:"origin_city"`
	DestinationCity   string    `json:"destination_city"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	ArrivalDatetime   time.Time `json:"arrival_datetime"`
	Price             int64     `json:"price"`
	AvailableSeats    int       `json:"available_seats"`
}

type FlightSearchQuery struct {
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	DepartureDate   string `json:"departure_date"`
	NumPassengers   int    `json:"num_passengers"`
}

// SameRoute reports whether two queries cover the same route and date.
// Passenger count is deliberately ignored: the recent-searches list
// deduplicates on route only.
func (q FlightSearchQuery) SameRoute(other FlightSearchQuery) bool {
	return q.OriginCity == other.OriginCity &&
		q.DestinationCity == other.DestinationCity &&
		q.DepartureDate == other.DepartureDate
}

// Validate checks every rule and collects all failures keyed by field name.
// A nil result means the query is valid.
func (q FlightSearchQuery) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(q.OriginCity) == "" {
		errs["origin_city"] = "Origin city is required"
	}
	if strings.TrimSpace(q.DestinationCity) == "" {
		errs["destination_city"] = "Destination city is required"
	}
	if q.OriginCity == q.DestinationCity {
		errs["destination_city"] = "Destination must be different from origin"
	}
	if q.DepartureDate == "" {
		errs["departure_date"] = "Departure date is required"
	}
	if q.NumPassengers < 1 {
		errs["num_passengers"] = "At least 1 passenger is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
