package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aprahadian/flightbook/config"
	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/google/uuid"
)

// HTTPClient talks to the booking service over HTTP/JSON. Field names and
// status values on the wire are part of the service contract and round-trip
// through the domain types' json tags.
type HTTPClient struct {
	base *url.URL
	http *http.Client
}

func NewHTTPClient(cfg config.ServiceConfig) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse service base url: %w", err)
	}
	return &HTTPClient{
		base: base,
		http: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

func (c *HTTPClient) SearchFlights(ctx context.Context, query domain.FlightSearchQuery) ([]domain.Flight, error) {
	params := url.Values{}
	params.Set("origin_city", query.OriginCity)
	params.Set("destination_city", query.DestinationCity)
	params.Set("departure_date", query.DepartureDate)
	params.Set("num_passengers", strconv.Itoa(query.NumPassengers))

	var flights []domain.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights", params, nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.BookingResponse, error) {
	var resp domain.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context, filter ListFilter) ([]domain.BookingSummary, error) {
	params := url.Values{}
	if filter.UserID != "" {
		params.Set("user_id", filter.UserID)
	}
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}

	var bookings []domain.BookingSummary
	if err := c.do(ctx, http.MethodGet, "/api/bookings", params, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *HTTPClient) GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetail, error) {
	var detail domain.BookingDetail
	if err := c.do(ctx, http.MethodGet, bookingPath(bookingID), nil, nil, &detail); err != nil {
		return nil, c.tagNotFound(err, bookingID)
	}
	return &detail, nil
}

func (c *HTTPClient) UpdateBooking(ctx context.Context, bookingID string, req domain.UpdateBookingRequest) (*domain.BookingDetail, error) {
	var detail domain.BookingDetail
	if err := c.do(ctx, http.MethodPut, bookingPath(bookingID), nil, req, &detail); err != nil {
		return nil, c.tagNotFound(err, bookingID)
	}
	return &detail, nil
}

func (c *HTTPClient) CancelBooking(ctx context.Context, bookingID string) error {
	if err := c.do(ctx, http.MethodDelete, bookingPath(bookingID), nil, nil, nil); err != nil {
		return c.tagNotFound(err, bookingID)
	}
	return nil
}

// bookingPath escapes the id so a hostile or malformed one cannot change
// the request path.
func bookingPath(bookingID string) string {
	return "/api/bookings/" + url.PathEscape(bookingID)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	// path is already escaped; going through url.Parse keeps RawPath
	// intact so escaped ids are not re-escaped by String().
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	u := c.base.ResolveReference(ref)
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: body.Error, Reason: body.Reason}
	case http.StatusNotFound:
		return &NotFoundError{}
	default:
		return &ServiceError{Status: resp.StatusCode, Message: body.Error}
	}
}

// tagNotFound fills in the booking id on 404s so callers get a usable message.
func (c *HTTPClient) tagNotFound(err error, bookingID string) error {
	if nf, ok := err.(*NotFoundError); ok {
		nf.BookingID = bookingID
	}
	return err
}

var _ BookingService = (*HTTPClient)(nil)
