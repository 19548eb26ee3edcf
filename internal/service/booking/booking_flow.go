package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/aprahadian/flightbook/internal/state"
)

type Phase string

const (
	PhaseReviewing  Phase = "REVIEWING"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseConfirmed  Phase = "CONFIRMED"
)

// Creator is the slice of the booking service the flow needs to submit.
type Creator interface {
	CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.BookingResponse, error)
}

// Flow walks one booking from review to confirmation. A failed submission
// drops back to Reviewing with the error retained and the passenger edits
// intact; state is never mutated until the service call fully succeeds.
type Flow struct {
	creator Creator
	store   *state.AppState
	cache   Cache

	mu         sync.Mutex
	phase      Phase
	flight     domain.Flight
	user       domain.UserProfile
	passengers []domain.PassengerDetail
	err        error
}

type FlowOption func(*Flow)

// WithCache lets the flow drop the user's cached bookings list once a
// booking is created, so the next refresh sees the new record.
func WithCache(cache Cache) FlowOption {
	return func(f *Flow) {
		f.cache = cache
	}
}

func NewFlow(creator Creator, store *state.AppState, opts ...FlowOption) *Flow {
	f := &Flow{creator: creator, store: store}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Begin starts reviewing the currently selected flight. The first passenger
// is pre-filled with the signed-in user's name and a Window preference.
func (f *Flow) Begin() error {
	flight, ok := f.store.SelectedFlight()
	if !ok {
		return errors.New("no flight selected")
	}
	user, ok := f.store.User()
	if !ok {
		return errors.New("not signed in")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseReviewing
	f.flight = flight
	f.user = user
	f.passengers = []domain.PassengerDetail{
		{Name: user.Name, SeatPreference: domain.SeatPreferenceWindow},
	}
	f.err = nil
	return nil
}

// SetPassengerCount resizes the passenger list, clamping the request to
// [1, available seats]. Growing appends blank Window entries; shrinking
// drops the tail and keeps earlier entries untouched. Returns the count
// actually applied.
func (f *Flow) SetPassengerCount(count int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if count < 1 {
		count = 1
	}
	if count > f.flight.AvailableSeats {
		count = f.flight.AvailableSeats
	}

	for len(f.passengers) < count {
		f.passengers = append(f.passengers, domain.PassengerDetail{SeatPreference: domain.SeatPreferenceWindow})
	}
	if len(f.passengers) > count {
		f.passengers = f.passengers[:count]
	}
	return count
}

func (f *Flow) SetPassengerName(index int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.passengers) {
		return errors.New("passenger index out of range")
	}
	f.passengers[index].Name = name
	return nil
}

func (f *Flow) SetSeatPreference(index int, pref domain.SeatPreference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.passengers) {
		return errors.New("passenger index out of range")
	}
	if !pref.Valid() {
		return errors.New("unknown seat preference")
	}
	f.passengers[index].SeatPreference = pref
	return nil
}

func (f *Flow) Passengers() []domain.PassengerDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.PassengerDetail, len(f.passengers))
	copy(out, f.passengers)
	return out
}

// TotalPrice is always derived from the current passenger count, never
// stored, so it cannot go stale when the count changes.
func (f *Flow) TotalPrice() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flight.Price * int64(len(f.passengers))
}

func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submit validates the draft and sends it to the service. Validation
// failures keep the flow in Reviewing and never reach the service. On
// success the booking is appended to the session's list and the selected
// flight cleared. The returned channel closes when the submission settles.
func (f *Flow) Submit(ctx context.Context) (<-chan struct{}, error) {
	f.mu.Lock()
	if f.phase != PhaseReviewing {
		f.mu.Unlock()
		return nil, errors.New("no booking under review")
	}

	passengers := make([]domain.PassengerDetail, len(f.passengers))
	copy(passengers, f.passengers)
	req := domain.BookingRequest{
		FlightCode:       f.flight.FlightCode,
		UserID:           f.user.ID,
		NumTickets:       len(passengers),
		PassengerDetails: passengers,
	}
	if errs := req.Validate(); errs != nil {
		f.err = errs
		f.mu.Unlock()
		return nil, errs
	}

	f.phase = PhaseSubmitting
	f.err = nil
	total := f.flight.Price * int64(req.NumTickets)
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := f.creator.CreateBooking(ctx, req)
		f.settle(ctx, req, resp, err, total)
	}()
	return done, nil
}

func (f *Flow) settle(ctx context.Context, req domain.BookingRequest, resp *domain.BookingResponse, err error, total int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.phase = PhaseReviewing
		f.err = err
		return
	}

	f.store.AppendBooking(domain.BookingSummary{
		BookingID:   resp.BookingID,
		FlightCode:  req.FlightCode,
		UserID:      req.UserID,
		Status:      domain.BookingStatusPendingPayment,
		BookingDate: time.Now().UTC(),
		TotalPrice:  total,
	})
	f.store.ClearSelectedFlight()
	if f.cache != nil {
		_ = f.cache.InvalidateBookings(ctx, req.UserID)
	}
	f.phase = PhaseConfirmed
}
