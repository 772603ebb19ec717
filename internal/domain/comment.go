package domain

import "time"

// Fallback display names when user resolution fails or no user is set.
const (
	UnknownAuthorName = "Unknown"
	UnassignedName    = "Unassigned"
)

// Comment is a message attached to a ticket. AuthorName is resolved from
// the author id and is not authoritative. Source ordering is preserved.
type Comment struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	HTMLBody   string    `json:"html_body"`
	CreatedAt  time.Time `json:"created_at"`
}
