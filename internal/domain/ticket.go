package domain

import "time"

// Ticket statuses.
const (
	TicketOpen     = "open"
	TicketAnswered = "answered"
	TicketClosed   = "closed"
)

// Ticket represents a support request raised by a customer. OwnerID is
// immutable after creation.
type Ticket struct {
	ID        string
	OwnerID   string
	Subject   string
	Body      string
	Status    string
	Answer    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTicketRequest holds parameters for opening a support ticket.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate checks that the request is well-formed.
func (r *CreateTicketRequest) Validate() error {
	if r.Subject == "" {
		return ErrValidation("subject is required")
	}
	if r.Body == "" {
		return ErrValidation("body is required")
	}
	return nil
}
