package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validQuery() FlightSearchQuery {
	return FlightSearchQuery{
		OriginCity:      "CGK",
		DestinationCity: "DPS",
		DepartureDate:   "2025-12-20",
		NumPassengers:   2,
	}
}

func TestFlightSearchQuery_Validate_OK(t *testing.T) {
	assert.Nil(t, validQuery().Validate())
}

func TestFlightSearchQuery_Validate_CollectsAllErrors(t *testing.T) {
	q := FlightSearchQuery{NumPassengers: 0}

	errs := q.Validate()

	assert.Equal(t, "Origin city is required", errs["origin_city"])
	// Both cities are empty and therefore equal, so the cross-field rule
	// wins over the emptiness message on the destination field.
	assert.Equal(t, "Destination must be different from origin", errs["destination_city"])
	assert.Equal(t, "Departure date is required", errs["departure_date"])
	assert.Equal(t, "At least 1 passenger is required", errs["num_passengers"])
}

func TestFlightSearchQuery_Validate_SameCity(t *testing.T) {
	q := validQuery()
	q.DestinationCity = q.OriginCity

	errs := q.Validate()

	assert.Len(t, errs, 1)
	assert.Equal(t, "Destination must be different from origin", errs["destination_city"])
}

func TestFlightSearchQuery_Validate_WhitespaceOrigin(t *testing.T) {
	q := validQuery()
	q.OriginCity = "   "

	errs := q.Validate()

	assert.Equal(t, "Origin city is required", errs["origin_city"])
	assert.NotContains(t, errs, "destination_city")
}

func TestFlightSearchQuery_Validate_PassengerCount(t *testing.T) {
	q := validQuery()
	q.NumPassengers = 0

	errs := q.Validate()

	assert.Len(t, errs, 1)
	assert.Equal(t, "At least 1 passenger is required", errs["num_passengers"])
}

func TestFlightSearchQuery_SameRoute(t *testing.T) {
	a := validQuery()
	b := a
	b.NumPassengers = 4

	assert.True(t, a.SameRoute(b))

	b.DepartureDate = "2025-12-21"
	assert.False(t, a.SameRoute(b))
}

func TestBookingRequest_Validate(t *testing.T) {
	req := BookingRequest{
		FlightCode: "GA204",
		UserID:     "user_test_001",
		NumTickets: 2,
		PassengerDetails: []PassengerDetail{
			{Name: "A", SeatPreference: SeatPreferenceWindow},
			{Name: "B", SeatPreference: SeatPreferenceAisle},
		},
	}
	assert.Nil(t, req.Validate())
}

func TestBookingRequest_Validate_CountMismatch(t *testing.T) {
	req := BookingRequest{
		FlightCode:       "GA204",
		UserID:           "user_test_001",
		NumTickets:       2,
		PassengerDetails: []PassengerDetail{{Name: "A"}},
	}

	errs := req.Validate()

	assert.Equal(t, "One passenger entry is required per ticket", errs["passenger_details"])
}

func TestBookingRequest_Validate_BlankName(t *testing.T) {
	req := BookingRequest{
		FlightCode: "GA204",
		UserID:     "user_test_001",
		NumTickets: 2,
		PassengerDetails: []PassengerDetail{
			{Name: "A", SeatPreference: SeatPreferenceWindow},
			{Name: "   ", SeatPreference: SeatPreferenceWindow},
		},
	}

	errs := req.Validate()

	assert.Len(t, errs, 1)
	assert.Equal(t, "Please provide names for all passengers", errs["passenger_2_name"])
}

func TestSeatPreference_Valid(t *testing.T) {
	assert.True(t, SeatPreferenceWindow.Valid())
	assert.True(t, SeatPreferenceMiddle.Valid())
	assert.True(t, SeatPreferenceAisle.Valid())
	assert.False(t, SeatPreference("Floor").Valid())
}
