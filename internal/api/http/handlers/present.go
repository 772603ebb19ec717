package handlers

import (
	"time"

	"github.com/spec-kit/zendesk-dashboard/internal/api/dto"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
)

// Summary truncation limits for the dashboard and comments API.
const (
	subjectSummaryLimit     = 80
	descriptionSummaryLimit = 150
	commentSummaryLimit     = 200
)

// presenter renders instants in the fixed display timezone. Truncation for
// summary views happens here, at the presentation boundary; cached values
// keep full bodies.
type presenter struct {
	location *time.Location
	label    string
}

func newPresenter(cfg config.DisplayConfig) presenter {
	return presenter{location: cfg.Location(), label: cfg.TZLabel}
}

func (p presenter) formatInstant(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(p.location).Format("2006-01-02 15:04:05") + " " + p.label
}

func (p presenter) ticketView(t domain.Ticket) dto.TicketView {
	subject := t.Subject
	if subject == "" {
		subject = "No subject"
	}
	description := t.Description
	if description == "" {
		description = "No description"
	}
	return dto.TicketView{
		ID:                 t.ID,
		Subject:            subject,
		SubjectShort:       truncate(subject, subjectSummaryLimit),
		Description:        description,
		DescriptionShort:   truncate(description, descriptionSummaryLimit),
		Status:             t.Status,
		Priority:           t.Priority,
		RequesterName:      t.RequesterName,
		AssigneeName:       t.AssigneeName,
		CreatedAtFormatted: p.formatInstant(t.CreatedAt),
		UpdatedAtFormatted: p.formatInstant(t.UpdatedAt),
	}
}

func (p presenter) commentResponse(c domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:                 c.ID,
		AuthorName:         c.AuthorName,
		CreatedAt:          c.CreatedAt,
		CreatedAtFormatted: p.formatInstant(c.CreatedAt),
		Body:               truncate(c.Body, commentSummaryLimit),
		HTMLBody:           c.HTMLBody,
	}
}

// truncate shortens s to limit characters plus an ellipsis marker. Counts
// runes so multi-byte text is not cut mid-character.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
