package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/aprahadian/flightbook/config"
	"github.com/aprahadian/flightbook/internal/cache"
	"github.com/aprahadian/flightbook/internal/client"
	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/aprahadian/flightbook/internal/service/booking"
	"github.com/aprahadian/flightbook/internal/service/search"
	"github.com/aprahadian/flightbook/internal/state"
)

// Drives one search-and-book session against the configured booking
// service. The flows and store are the same ones a UI shell would use.
func main() {
	origin := flag.String("from", "CGK", "origin city code")
	destination := flag.String("to", "DPS", "destination city code")
	date := flag.String("date", time.Now().Format("2006-01-02"), "departure date (YYYY-MM-DD)")
	passengers := flag.Int("passengers", 1, "number of passengers")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	svc, err := client.NewHTTPClient(cfg.Service)
	if err != nil {
		log.Fatalf("build client: %v", err)
	}

	store := state.New()
	store.SetUser(domain.UserProfile{ID: cfg.User.ID, Name: cfg.User.Name, Email: cfg.User.Email})

	var bookingsCache booking.Cache
	if cfg.Redis.Enabled {
		bookingsCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.BookingsTTLSeconds)*time.Second)
	}

	searchFlow := search.NewFlow(svc, store)
	bookingFlow := booking.NewFlow(svc, store, booking.WithCache(bookingsCache))
	manager := booking.NewManager(svc, store, bookingsCache)

	ctx := context.Background()

	query := domain.FlightSearchQuery{
		OriginCity:      *origin,
		DestinationCity: *destination,
		DepartureDate:   *date,
		NumPassengers:   *passengers,
	}
	done, err := searchFlow.Submit(ctx, query)
	if err != nil {
		log.Fatalf("search rejected: %v", err)
	}
	<-done

	snap := searchFlow.Snapshot()
	switch snap.Phase {
	case search.PhaseFailed:
		log.Fatalf("search failed: %v", snap.Err)
	case search.PhaseEmpty:
		log.Printf("no flights found for %s -> %s on %s", *origin, *destination, *date)
		return
	}

	for i, f := range snap.Results {
		log.Printf("[%d] %s %s %s->%s departs %s price %d (%d seats)",
			i, f.FlightCode, f.AirlineName, f.OriginCity, f.DestinationCity,
			f.DepartureDatetime.Format(time.RFC3339), f.Price, f.AvailableSeats)
	}

	flight, err := searchFlow.Select(0)
	if err != nil {
		log.Fatalf("select flight: %v", err)
	}
	log.Printf("selected %s", flight.FlightCode)

	if err := bookingFlow.Begin(); err != nil {
		log.Fatalf("begin booking: %v", err)
	}
	applied := bookingFlow.SetPassengerCount(*passengers)
	for i := 0; i < applied; i++ {
		if err := bookingFlow.SetPassengerName(i, cfg.User.Name); err != nil {
			log.Fatalf("set passenger name: %v", err)
		}
	}
	log.Printf("total price: %d", bookingFlow.TotalPrice())

	done, err = bookingFlow.Submit(ctx)
	if err != nil {
		log.Fatalf("booking rejected: %v", err)
	}
	<-done

	if bookingFlow.Phase() != booking.PhaseConfirmed {
		log.Fatalf("booking failed: %v", bookingFlow.Err())
	}

	if err := manager.Refresh(ctx, ""); err != nil {
		log.Fatalf("refresh bookings: %v", err)
	}
	for _, b := range store.Bookings() {
		log.Printf("booking %s %s %s total %d", b.BookingID, b.FlightCode, b.Status, b.TotalPrice)
	}
}
