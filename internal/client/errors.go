package client

import "fmt"

// ErrorResponse is the service's wire-level error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ValidationError is a request the service rejected (HTTP 400), e.g. not
// enough available seats. The policy lives server-side; the client only
// surfaces the message.
type ValidationError struct {
	Message string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Reason)
	}
	return e.Message
}

// NotFoundError means the booking id is unknown to the service. Terminal
// for the current navigation; callers should fall back to a listing view.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// ServiceError covers transport failures and unexpected server responses.
// Recoverable by user-initiated retry.
type ServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booking service unavailable: %v", e.Err)
	}
	return fmt.Sprintf("booking service error (status %d): %s", e.Status, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }
