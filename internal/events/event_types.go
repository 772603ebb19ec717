package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventTicketCreated is published when the webhook reports a new ticket.
	EventTicketCreated EventType = "ticket_created"
)

// Event represents a domain event emitted on webhook receipt.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  int64     `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload carries the fields the webhook body provided.
type TicketCreatedPayload struct {
	Subject string `json:"subject"`
	Status  string `json:"status"`
}
