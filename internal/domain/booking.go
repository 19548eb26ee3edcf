package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingStatusConfirmed      BookingStatus = "CONFIRMED"
	BookingStatusCancelled      BookingStatus = "CANCELLED"
)

type SeatPreference string

const (
	SeatPreferenceWindow SeatPreference = "Window"
	SeatPreferenceMiddle SeatPreference = "Middle"
	SeatPreferenceAisle  SeatPreference = "Aisle"
)

func (p SeatPreference) Valid() bool {
	switch p {
	case SeatPreferenceWindow, SeatPreferenceMiddle, SeatPreferenceAisle:
		return true
	}
	return false
}

type PassengerDetail struct {
	Name           string         `json:"name"`
	SeatPreference SeatPreference `json:"seat_preference,omitempty"`
}

type BookingRequest struct {
	FlightCode       string            `json:"flight_code"`
	UserID           string            `json:"user_id"`
	NumTickets       int               `json:"num_tickets"`
	PassengerDetails []PassengerDetail `json:"passenger_details,omitempty"`
}

// Validate enforces the request invariants: at least one ticket, one
// passenger entry per ticket, and a non-blank name for every passenger.
func (r BookingRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.NumTickets < 1 {
		errs["num_tickets"] = "At least 1 ticket is required"
	}
	if len(r.PassengerDetails) != r.NumTickets {
		errs["passenger_details"] = "One passenger entry is required per ticket"
	}
	for i, p := range r.PassengerDetails {
		if strings.TrimSpace(p.Name) == "" {
			errs[fmt.Sprintf("passenger_%d_name", i+1)] = "Please provide names for all passengers"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type UpdateBookingRequest struct {
	NumTickets       *int              `json:"num_tickets,omitempty"`
	PassengerDetails []PassengerDetail `json:"passenger_details,omitempty"`
	Status           *BookingStatus    `json:"status,omitempty"`
}

type BookingSummary struct {
	BookingID   string        `json:"booking_id"`
	FlightCode  string        `json:"flight_code"`
	UserID      string        `json:"user_id"`
	Status      BookingStatus `json:"status"`
	BookingDate time.Time     `json:"booking_date"`
	TotalPrice  int64         `json:"total_price"`
}

type BookingDetail struct {
	BookingSummary
	FlightDetails    Flight            `json:"flight_details"`
	NumTickets       int               `json:"num_tickets"`
	PassengerDetails []PassengerDetail `json:"passenger_details,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type BookingResponse struct {
	Message       string `json:"message"`
	BookingID     string `json:"booking_id"`
	FlightDetails Flight `json:"flight_details"`
}
