package state

import (
	"sync"

	"github.com/aprahadian/flightbook/internal/domain"
)

// MaxRecentSearches bounds the recent-searches list.
const MaxRecentSearches = 5

// AppState is the shared session store: current user, selected flight,
// recent searches and the cached bookings list. It is passed explicitly to
// every flow; there is no package-level singleton. Flow completions arrive
// on their own goroutines, so all access goes through the mutex.
type AppState struct {
	mu             sync.RWMutex
	user           *domain.UserProfile
	selectedFlight *domain.Flight
	recentSearches []domain.FlightSearchQuery
	bookings       []domain.BookingSummary
}

func New() *AppState {
	return &AppState{}
}

func (s *AppState) User() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.UserProfile{}, false
	}
	return *s.user, true
}

func (s *AppState) SetUser(user domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *AppState) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *AppState) SelectedFlight() (domain.Flight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedFlight == nil {
		return domain.Flight{}, false
	}
	return *s.selectedFlight, true
}

// SelectFlight replaces any previously selected flight.
func (s *AppState) SelectFlight(flight domain.Flight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFlight = &flight
}

func (s *AppState) ClearSelectedFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFlight = nil
}

// AddRecentSearch puts the query at the front, drops any older entry for
// the same route and date, and truncates to MaxRecentSearches.
func (s *AppState) AddRecentSearch(query domain.FlightSearchQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]domain.FlightSearchQuery, 0, len(s.recentSearches)+1)
	updated = append(updated, query)
	for _, existing := range s.recentSearches {
		if existing.SameRoute(query) {
			continue
		}
		updated = append(updated, existing)
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}
	s.recentSearches = updated
}

func (s *AppState) RecentSearches() []domain.FlightSearchQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FlightSearchQuery, len(s.recentSearches))
	copy(out, s.recentSearches)
	return out
}

func (s *AppState) Bookings() []domain.BookingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BookingSummary, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// SetBookings replaces the bookings list wholesale; there is no
// incremental merge, the service copy is the source of truth.
func (s *AppState) SetBookings(bookings []domain.BookingSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = make([]domain.BookingSummary, len(bookings))
	copy(s.bookings, bookings)
}

func (s *AppState) AppendBooking(booking domain.BookingSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, booking)
}
