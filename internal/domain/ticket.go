package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states reported by the ticket source.
type TicketStatus string

const (
	TicketStatusNew     TicketStatus = "new"
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusHold    TicketStatus = "hold"
	TicketStatusSolved  TicketStatus = "solved"
	TicketStatusClosed  TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels; empty means unset.
type TicketPriority string

const (
	TicketPriorityUrgent TicketPriority = "urgent"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityUnset  TicketPriority = ""
)

// Ticket is an immutable snapshot of a support request fetched from the
// remote source. Fields are JSON-tagged because snapshots are cached as
// serialized payloads.
type Ticket struct {
	ID            int64          `json:"id"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description"`
	Status        TicketStatus   `json:"status"`
	Priority      TicketPriority `json:"priority"`
	RequesterID   int64          `json:"requester_id"`
	AssigneeID    *int64         `json:"assignee_id,omitempty"`
	RequesterName string         `json:"requester_name"`
	AssigneeName  string         `json:"assignee_name"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NormalizeStatus maps a raw source status onto the known set. Unknown or
// missing values default to "new". The source spells hold both ways.
func NormalizeStatus(raw string) TicketStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return TicketStatusOpen
	case "pending":
		return TicketStatusPending
	case "hold", "on-hold":
		return TicketStatusHold
	case "solved":
		return TicketStatusSolved
	case "closed":
		return TicketStatusClosed
	default:
		return TicketStatusNew
	}
}

// NormalizePriority maps a raw source priority onto the known set. Missing
// stays unset; unknown non-empty values default to "normal".
func NormalizePriority(raw string) TicketPriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urgent":
		return TicketPriorityUrgent
	case "high":
		return TicketPriorityHigh
	case "low":
		return TicketPriorityLow
	case "":
		return TicketPriorityUnset
	default:
		return TicketPriorityNormal
	}
}
