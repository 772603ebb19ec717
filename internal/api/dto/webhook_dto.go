package dto

// WebhookTicket is the minimal ticket shape a webhook body must carry.
type WebhookTicket struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
}

// WebhookPayload is the inbound ticket-created notification.
type WebhookPayload struct {
	Ticket *WebhookTicket `json:"ticket"`
}

// WebhookAck confirms receipt of a valid notification.
type WebhookAck struct {
	Message  string `json:"message"`
	TicketID int64  `json:"ticket_id"`
}
