package booking

import (
	"context"

	"github.com/aprahadian/flightbook/internal/client"
	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/aprahadian/flightbook/internal/state"
)

// RecordsUseCase covers the bookings tab: list refresh, detail, update
// and cancellation. The service copy is the source of truth; the session
// list is replaced wholesale on every refresh.
type RecordsUseCase interface {
	Refresh(ctx context.Context, status domain.BookingStatus) error
	Get(ctx context.Context, bookingID string) (*domain.BookingDetail, error)
	Update(ctx context.Context, bookingID string, req domain.UpdateBookingRequest) (*domain.BookingDetail, error)
	Cancel(ctx context.Context, bookingID string) error
}

// Records is the slice of the booking service the manager needs.
type Records interface {
	ListBookings(ctx context.Context, filter client.ListFilter) ([]domain.BookingSummary, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetail, error)
	UpdateBooking(ctx context.Context, bookingID string, req domain.UpdateBookingRequest) (*domain.BookingDetail, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

type Cache interface {
	GetBookings(ctx context.Context, userID string) ([]domain.BookingSummary, error)
	SetBookings(ctx context.Context, userID string, bookings []domain.BookingSummary) error
	InvalidateBookings(ctx context.Context, userID string) error
}

type Manager struct {
	records Records
	store   *state.AppState
	cache   Cache
}

// NewManager wires the bookings manager. cache may be nil, in which case
// every refresh goes straight to the service.
func NewManager(records Records, store *state.AppState, cache Cache) *Manager {
	return &Manager{records: records, store: store, cache: cache}
}

// Refresh reloads the signed-in user's bookings, optionally narrowed by
// status. The unfiltered list is read through the cache; a service failure
// leaves the session list untouched.
func (m *Manager) Refresh(ctx context.Context, status domain.BookingStatus) error {
	user, ok := m.store.User()
	if !ok {
		m.store.SetBookings(nil)
		return nil
	}

	if status == "" && m.cache != nil {
		if cached, err := m.cache.GetBookings(ctx, user.ID); err == nil && cached != nil {
			m.store.SetBookings(cached)
			return nil
		}
	}

	bookings, err := m.records.ListBookings(ctx, client.ListFilter{UserID: user.ID, Status: status})
	if err != nil {
		return err
	}

	if status == "" && m.cache != nil {
		_ = m.cache.SetBookings(ctx, user.ID, bookings)
	}
	m.store.SetBookings(bookings)
	return nil
}

func (m *Manager) Get(ctx context.Context, bookingID string) (*domain.BookingDetail, error) {
	return m.records.GetBooking(ctx, bookingID)
}

func (m *Manager) Update(ctx context.Context, bookingID string, req domain.UpdateBookingRequest) (*domain.BookingDetail, error) {
	detail, err := m.records.UpdateBooking(ctx, bookingID, req)
	if err != nil {
		return nil, err
	}
	m.invalidate(ctx)
	return detail, nil
}

// Cancel asks the service to cancel the booking. The service treats a
// second cancel of the same booking as a no-op success, so callers may
// retry freely.
func (m *Manager) Cancel(ctx context.Context, bookingID string) error {
	if err := m.records.CancelBooking(ctx, bookingID); err != nil {
		return err
	}
	m.invalidate(ctx)
	return nil
}

func (m *Manager) invalidate(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if user, ok := m.store.User(); ok {
		_ = m.cache.InvalidateBookings(ctx, user.ID)
	}
}

var _ RecordsUseCase = (*Manager)(nil)
