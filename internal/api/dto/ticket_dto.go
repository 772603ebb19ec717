package dto

import "github.com/spec-kit/zendesk-dashboard/internal/domain"

// TicketView is the template-facing shape of one ticket row.
type TicketView struct {
	ID                 int64
	Subject            string
	SubjectShort       string
	Description        string
	DescriptionShort   string
	Status             domain.TicketStatus
	Priority           domain.TicketPriority
	RequesterName      string
	AssigneeName       string
	CreatedAtFormatted string
	UpdatedAtFormatted string
}
