package stubserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func doJSON(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func bookingRequest(tickets int, names ...string) domain.BookingRequest {
	passengers := make([]domain.PassengerDetail, 0, len(names))
	for _, n := range names {
		passengers = append(passengers, domain.PassengerDetail{Name: n, SeatPreference: domain.SeatPreferenceWindow})
	}
	return domain.BookingRequest{
		FlightCode:       "GA204",
		UserID:           "user_test_001",
		NumTickets:       tickets,
		PassengerDetails: passengers,
	}
}

func TestStub_SearchFlights(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodGet, "/api/flights?origin_city=CGK&destination_city=DPS&departure_date=2025-12-20&num_passengers=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var flights []domain.Flight
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flights))
	assert.Len(t, flights, 3)

	ga := flights[0]
	assert.Equal(t, "GA204", ga.FlightCode)
	assert.Equal(t, "Garuda Indonesia", ga.AirlineName)
	assert.Equal(t, "CGK", ga.OriginCity)
	assert.Equal(t, "DPS", ga.DestinationCity)
	assert.Equal(t, int64(1650000), ga.Price)
	assert.Equal(t, 35, ga.AvailableSeats)
	assert.Equal(t, "2025-12-20T08:00:00Z", ga.DepartureDatetime.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, "2025-12-20T10:50:00Z", ga.ArrivalDatetime.Format("2006-01-02T15:04:05Z07:00"))
}

func TestStub_SearchFlights_MissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodGet, "/api/flights?origin_city=CGK", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStub_CreateBooking_DecrementsSeats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(2, "A", "B"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp domain.BookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booking created successfully", resp.Message)
	assert.NotEmpty(t, resp.BookingID)
	assert.Equal(t, 33, resp.FlightDetails.AvailableSeats)

	w = doJSON(t, h, http.MethodGet, "/api/flights?origin_city=CGK&destination_city=DPS&departure_date=2025-12-20", nil)
	var flights []domain.Flight
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flights))
	assert.Equal(t, 33, flights[0].AvailableSeats)
}

func TestStub_CreateBooking_Rejections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(0))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(2, "A"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := bookingRequest(1, "A")
	req.FlightCode = "ZZ999"
	w = doJSON(t, h, http.MethodPost, "/api/bookings", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// LA303 only has 12 seats.
	names := make([]string, 13)
	for i := range names {
		names[i] = "P"
	}
	req = bookingRequest(13, names...)
	req.FlightCode = "LA303"
	w = doJSON(t, h, http.MethodPost, "/api/bookings", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not enough available seats", body["error"])
}

func TestStub_ListBookings_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(1, "A"))
	other := bookingRequest(1, "B")
	other.UserID = "user_test_002"
	doJSON(t, h, http.MethodPost, "/api/bookings", other)

	w := doJSON(t, h, http.MethodGet, "/api/bookings?user_id=user_test_001", nil)
	var summaries []domain.BookingSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 1)
	assert.Equal(t, "user_test_001", summaries[0].UserID)

	w = doJSON(t, h, http.MethodGet, "/api/bookings?status=CONFIRMED", nil)
	summaries = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Empty(t, summaries)

	w = doJSON(t, h, http.MethodGet, "/api/bookings", nil)
	summaries = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}

func TestStub_GetBooking_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodGet, "/api/bookings/booking-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStub_UpdateBooking_RecomputesTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(1, "A"))
	var resp domain.BookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	tickets := 3
	w = doJSON(t, h, http.MethodPut, "/api/bookings/"+resp.BookingID, domain.UpdateBookingRequest{NumTickets: &tickets})
	assert.Equal(t, http.StatusOK, w.Code)

	var detail domain.BookingDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, 3, detail.NumTickets)
	assert.Equal(t, int64(3*1650000), detail.TotalPrice)
	assert.Equal(t, 32, detail.FlightDetails.AvailableSeats)
}

func TestStub_CancelBooking_Idempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New().Handler()

	w := doJSON(t, h, http.MethodPost, "/api/bookings", bookingRequest(2, "A", "B"))
	var resp domain.BookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, h, http.MethodDelete, "/api/bookings/"+resp.BookingID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second cancel is a no-op success, and the seats are not released twice.
	w = doJSON(t, h, http.MethodDelete, "/api/bookings/"+resp.BookingID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/bookings/"+resp.BookingID, nil)
	var detail domain.BookingDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, domain.BookingStatusCancelled, detail.Status)

	w = doJSON(t, h, http.MethodGet, "/api/flights?origin_city=CGK&destination_city=DPS&departure_date=2025-12-20", nil)
	var flights []domain.Flight
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flights))
	assert.Equal(t, 35, flights[0].AvailableSeats)
}
