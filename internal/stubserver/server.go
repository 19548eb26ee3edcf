// Package stubserver is an in-memory implementation of the booking service
// wire contract, used for development and end-to-end tests of the client.
// It owns the server-side policy the client only surfaces: ticket-count
// checks, seat availability and idempotent cancellation.
package stubserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type offerTemplate struct {
	code      string
	airline   string
	price     int64
	seats     int
	departure time.Duration
	arrival   time.Duration
}

// The canned catalogue: every route/date gets the same three offers.
var catalogue = []offerTemplate{
	{code: "GA204", airline: "Garuda Indonesia", price: 1650000, seats: 35, departure: 8 * time.Hour, arrival: 10*time.Hour + 50*time.Minute},
	{code: "LA303", airline: "Lion Air", price: 985000, seats: 12, departure: 10*time.Hour + 30*time.Minute, arrival: 13*time.Hour + 20*time.Minute},
	{code: "BA505", airline: "Batik Air", price: 1250000, seats: 28, departure: 14*time.Hour + 15*time.Minute, arrival: 17 * time.Hour},
}

type Server struct {
	mu       sync.Mutex
	seats    map[string]int
	bookings map[string]*domain.BookingDetail
	order    []string
}

func New() *Server {
	seats := make(map[string]int, len(catalogue))
	for _, tpl := range catalogue {
		seats[tpl.code] = tpl.seats
	}
	return &Server{
		seats:    seats,
		bookings: make(map[string]*domain.BookingDetail),
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	s.Register(router.Group("/api"))
	return router
}

func (s *Server) Register(router *gin.RouterGroup) {
	router.GET("/flights", s.searchFlights)
	router.POST("/bookings", s.createBooking)
	router.GET("/bookings", s.listBookings)
	router.GET("/bookings/:id", s.getBooking)
	router.PUT("/bookings/:id", s.updateBooking)
	router.DELETE("/bookings/:id", s.cancelBooking)
}

func (s *Server) searchFlights(c *gin.Context) {
	origin := c.Query("origin_city")
	destination := c.Query("destination_city")
	date := c.Query("departure_date")
	if origin == "" || destination == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin_city, destination_city and departure_date are required"})
		return
	}
	if n := c.Query("num_passengers"); n != "" {
		if parsed, err := strconv.Atoi(n); err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num_passengers must be a positive integer"})
			return
		}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_date must be YYYY-MM-DD"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flights := make([]domain.Flight, 0, len(catalogue))
	for i, tpl := range catalogue {
		flights = append(flights, domain.Flight{
			ID:                int64(101 + i),
			FlightCode:        tpl.code,
			AirlineName:       tpl.airline,
			OriginCity:        origin,
			DestinationCity:   destination,
			DepartureDatetime: day.Add(tpl.departure).UTC(),
			ArrivalDatetime:   day.Add(tpl.arrival).UTC(),
			Price:             tpl.price,
			AvailableSeats:    s.seats[tpl.code],
		})
	}
	c.JSON(http.StatusOK, flights)
}

func (s *Server) createBooking(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NumTickets < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "num_tickets must be at least 1"})
		return
	}
	if len(req.PassengerDetails) != req.NumTickets {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passenger_details must have one entry per ticket"})
		return
	}

	tpl, ok := lookupOffer(req.FlightCode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown flight code %s", req.FlightCode)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seats[req.FlightCode] < req.NumTickets {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "not enough available seats",
			"reason": fmt.Sprintf("%d seats left on %s", s.seats[req.FlightCode], req.FlightCode),
		})
		return
	}
	s.seats[req.FlightCode] -= req.NumTickets

	now := time.Now().UTC()
	id := "booking-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	// The wire contract does not carry the searched route into the
	// booking, so the stub pins the reference route.
	flight := domain.Flight{
		ID:              tpl.id,
		FlightCode:      tpl.code,
		AirlineName:     tpl.airline,
		OriginCity:      "CGK",
		DestinationCity: "DPS",
		Price:           tpl.price,
		AvailableSeats:  s.seats[tpl.code],
	}

	detail := &domain.BookingDetail{
		BookingSummary: domain.BookingSummary{
			BookingID:   id,
			FlightCode:  req.FlightCode,
			UserID:      req.UserID,
			Status:      domain.BookingStatusPendingPayment,
			BookingDate: now,
			TotalPrice:  tpl.price * int64(req.NumTickets),
		},
		FlightDetails:    flight,
		NumTickets:       req.NumTickets,
		PassengerDetails: req.PassengerDetails,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.bookings[id] = detail
	s.order = append(s.order, id)

	c.JSON(http.StatusCreated, domain.BookingResponse{
		Message:       "Booking created successfully",
		BookingID:     id,
		FlightDetails: flight,
	})
}

func (s *Server) listBookings(c *gin.Context) {
	userID := c.Query("user_id")
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]domain.BookingSummary, 0, len(s.order))
	for _, id := range s.order {
		b := s.bookings[id]
		if userID != "" && b.UserID != userID {
			continue
		}
		if status != "" && string(b.Status) != status {
			continue
		}
		summaries = append(summaries, b.BookingSummary)
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) getBooking(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) updateBooking(c *gin.Context) {
	var req domain.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if b.Status == domain.BookingStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking is cancelled"})
		return
	}

	if req.NumTickets != nil {
		if *req.NumTickets < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num_tickets must be at least 1"})
			return
		}
		delta := *req.NumTickets - b.NumTickets
		if delta > s.seats[b.FlightCode] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not enough available seats"})
			return
		}
		s.seats[b.FlightCode] -= delta
		b.NumTickets = *req.NumTickets
		b.TotalPrice = b.FlightDetails.Price * int64(b.NumTickets)
		b.FlightDetails.AvailableSeats = s.seats[b.FlightCode]
	}
	if req.PassengerDetails != nil {
		b.PassengerDetails = req.PassengerDetails
	}
	if req.Status != nil {
		if *req.Status != domain.BookingStatusConfirmed && *req.Status != domain.BookingStatusPendingPayment {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be CONFIRMED or PENDING_PAYMENT"})
			return
		}
		b.Status = *req.Status
	}
	b.UpdatedAt = time.Now().UTC()

	c.JSON(http.StatusOK, b)
}

// cancelBooking is idempotent: cancelling an already-cancelled booking
// returns success without touching seat counts again.
func (s *Server) cancelBooking(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if b.Status != domain.BookingStatusCancelled {
		b.Status = domain.BookingStatusCancelled
		b.UpdatedAt = time.Now().UTC()
		s.seats[b.FlightCode] += b.NumTickets
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

type offerInfo struct {
	id      int64
	code    string
	airline string
	price   int64
}

func lookupOffer(code string) (offerInfo, bool) {
	for i, tpl := range catalogue {
		if tpl.code == code {
			return offerInfo{id: int64(101 + i), code: tpl.code, airline: tpl.airline, price: tpl.price}, true
		}
	}
	return offerInfo{}, false
}
