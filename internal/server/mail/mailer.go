// Package mail sends transactional email for the marketplace server.
package mail

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. Delivery failure is surfaced to the caller and
// never retried here.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
