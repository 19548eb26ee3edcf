package client

import (
	"context"

	"github.com/aprahadian/flightbook/internal/domain"
)

// BookingService is the boundary to the external flight/booking provider.
// Implementations are plain adapters: no retries, no caching, no batching.
type BookingService interface {
	SearchFlights(ctx context.Context, query domain.FlightSearchQuery) ([]domain.Flight, error)
	CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.BookingResponse, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]domain.BookingSummary, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetail, error)
	UpdateBooking(ctx context.Context, bookingID string, req domain.UpdateBookingRequest) (*domain.BookingDetail, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

// ListFilter narrows ListBookings. Zero values mean "no filter"; the
// service then decides the visible set.
type ListFilter struct {
	UserID string
	Status domain.BookingStatus
}
