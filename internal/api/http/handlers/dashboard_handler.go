package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/api/dto"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
	"github.com/spec-kit/zendesk-dashboard/internal/service"
)

const notConfiguredLabel = "Not configured"

// statusOrder fixes the display order of KPI buckets.
var statusOrder = []domain.TicketStatus{
	domain.TicketStatusNew,
	domain.TicketStatusOpen,
	domain.TicketStatusPending,
	domain.TicketStatusHold,
	domain.TicketStatusSolved,
	domain.TicketStatusClosed,
}

// DashboardHandler renders the server-side pages.
type DashboardHandler struct {
	tickets *service.TicketService
	stats   *service.StatsService
	zendesk config.ZendeskConfig
	present presenter
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(tickets *service.TicketService, stats *service.StatsService, zendeskCfg config.ZendeskConfig, displayCfg config.DisplayConfig) *DashboardHandler {
	return &DashboardHandler{
		tickets: tickets,
		stats:   stats,
		zendesk: zendeskCfg,
		present: newPresenter(displayCfg),
	}
}

// Index GET /. Renders the recent ticket list, or a configuration/error
// panel when the source is not configured or unreachable. Never conflates
// "no tickets exist" with "could not reach the ticket source".
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	domainLabel := h.zendesk.BaseDomain
	if domainLabel == "" {
		domainLabel = notConfiguredLabel
	}
	userLabel := h.zendesk.User
	if userLabel == "" {
		userLabel = notConfiguredLabel
	}
	apiKeyStatus := notConfiguredLabel
	if h.zendesk.APIKey != "" {
		apiKeyStatus = "Configured"
	}
	configStatus := "Incomplete"
	if h.zendesk.Configured() {
		configStatus = "Ready"
	}

	var (
		views        []dto.TicketView
		ticketsError string
		cacheStatus  service.CacheStatus
	)
	if h.zendesk.Configured() {
		tickets, status, err := h.tickets.RecentTickets(c.UserContext())
		if err != nil {
			ticketsError = "Error fetching tickets: " + err.Error()
		} else {
			cacheStatus = status
			views = make([]dto.TicketView, 0, len(tickets))
			for _, t := range tickets {
				views = append(views, h.present.ticketView(t))
			}
		}
	}

	return c.Render("index", fiber.Map{
		"ZendeskDomain": domainLabel,
		"ZendeskUser":   userLabel,
		"APIKeyStatus":  apiKeyStatus,
		"ConfigStatus":  configStatus,
		"RecentTickets": views,
		"TicketsError":  ticketsError,
		"CacheStatus":   string(cacheStatus),
	})
}

// statusRow is one line of the KPI summary table.
type statusRow struct {
	Status  domain.TicketStatus
	Count   int
	Percent float64
}

// bucketView groups tickets for one status section.
type bucketView struct {
	Status  domain.TicketStatus
	Tickets []dto.TicketView
}

// Stats GET|POST /dashboard. Aggregates ticket counts for a date range,
// defaulting to month-to-date.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	today := time.Now().UTC()
	defaultStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	defaultEnd := today.Format("2006-01-02")

	start := c.FormValue("start_date", defaultStart)
	end := c.FormValue("end_date", defaultEnd)

	var (
		rows       []statusRow
		buckets    []bucketView
		total      int
		statsError string
	)
	stats, err := h.stats.TicketStats(c.UserContext(), start, end)
	if err != nil {
		statsError = err.Error()
	} else {
		total = stats.Total
		for _, status := range statusOrder {
			rows = append(rows, statusRow{
				Status:  status,
				Count:   stats.Counts[status],
				Percent: stats.Percent(status),
			})
			tickets := stats.Buckets[status]
			if len(tickets) == 0 {
				continue
			}
			views := make([]dto.TicketView, 0, len(tickets))
			for _, t := range tickets {
				views = append(views, h.present.ticketView(t))
			}
			buckets = append(buckets, bucketView{Status: status, Tickets: views})
		}
	}

	return c.Render("dashboard", fiber.Map{
		"ZendeskDomain": h.zendesk.BaseDomain,
		"StartDate":     start,
		"EndDate":       end,
		"Total":         total,
		"Rows":          rows,
		"Buckets":       buckets,
		"StatsError":    statsError,
	})
}
