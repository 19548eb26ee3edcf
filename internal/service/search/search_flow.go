package search

import (
	"context"
	"errors"
	"sync"

	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/aprahadian/flightbook/internal/state"
)

type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseSearching Phase = "SEARCHING"
	PhaseResults   Phase = "RESULTS"
	PhaseEmpty     Phase = "EMPTY"
	PhaseFailed    Phase = "FAILED"
)

// Searcher is the slice of the booking service the search flow needs.
type Searcher interface {
	SearchFlights(ctx context.Context, query domain.FlightSearchQuery) ([]domain.Flight, error)
}

// Snapshot is the UI-visible state of the flow at one point in time.
// Empty and Failed are distinct: no matches is not an error.
type Snapshot struct {
	Phase   Phase
	Query   domain.FlightSearchQuery
	Results []domain.Flight
	Err     error
}

// Flow runs one search at a time. Submitting a new query supersedes any
// pending one: each submission gets a sequence number and a completion is
// applied only while its number is still the latest. There is no explicit
// cancellation; a superseded response is simply discarded.
type Flow struct {
	searcher Searcher
	store    *state.AppState

	mu      sync.Mutex
	seq     uint64
	phase   Phase
	query   domain.FlightSearchQuery
	results []domain.Flight
	err     error
}

func NewFlow(searcher Searcher, store *state.AppState) *Flow {
	return &Flow{searcher: searcher, store: store, phase: PhaseIdle}
}

// Submit validates the query, records it in the recent-searches list and
// dispatches the search. Validation failures are returned as
// domain.FieldErrors and nothing is dispatched or recorded. The returned
// channel closes once this submission's completion has been processed,
// whether it was applied or discarded as stale.
func (f *Flow) Submit(ctx context.Context, query domain.FlightSearchQuery) (<-chan struct{}, error) {
	if errs := query.Validate(); errs != nil {
		return nil, errs
	}

	f.store.AddRecentSearch(query)

	f.mu.Lock()
	f.seq++
	id := f.seq
	f.phase = PhaseSearching
	f.query = query
	f.err = nil
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		flights, err := f.searcher.SearchFlights(ctx, query)
		f.apply(id, flights, err)
	}()
	return done, nil
}

// Retry re-submits the last query. Only meaningful after a failure, but
// harmless otherwise.
func (f *Flow) Retry(ctx context.Context) (<-chan struct{}, error) {
	f.mu.Lock()
	query := f.query
	started := f.seq > 0
	f.mu.Unlock()

	if !started {
		return nil, errors.New("no search to retry")
	}
	return f.Submit(ctx, query)
}

// Select stores the chosen offer as the session's selected flight.
func (f *Flow) Select(index int) (domain.Flight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseResults {
		return domain.Flight{}, errors.New("no search results to select from")
	}
	if index < 0 || index >= len(f.results) {
		return domain.Flight{}, errors.New("selected flight is out of range")
	}

	flight := f.results[index]
	f.store.SelectFlight(flight)
	return flight, nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := make([]domain.Flight, len(f.results))
	copy(results, f.results)
	return Snapshot{Phase: f.phase, Query: f.query, Results: results, Err: f.err}
}

func (f *Flow) apply(id uint64, flights []domain.Flight, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id != f.seq {
		// A newer search superseded this one; drop the late response.
		return
	}

	switch {
	case err != nil:
		f.phase = PhaseFailed
		f.results = nil
		f.err = err
	case len(flights) == 0:
		f.phase = PhaseEmpty
		f.results = nil
		f.err = nil
	default:
		f.phase = PhaseResults
		f.results = flights
		f.err = nil
	}
}
