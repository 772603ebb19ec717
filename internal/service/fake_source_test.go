package service

import (
	"context"

	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

var errNotFound = util.NewNotFound("user")

// fakeSource implements zendesk.API for service tests.
type fakeSource struct {
	unconfigured bool

	tickets    []zendesk.Ticket
	ticketsErr error

	comments    map[int64][]zendesk.Comment
	commentsErr error

	users    map[int64]string
	usersErr error

	searchResults []zendesk.Ticket
	searchErr     error

	recentCalls   int
	commentCalls  int
	showUserCalls int
	showManyCalls int
	searchCalls   int
}

func (f *fakeSource) Configured() bool { return !f.unconfigured }

func (f *fakeSource) RecentTickets(_ context.Context, count int) ([]zendesk.Ticket, error) {
	f.recentCalls++
	if f.ticketsErr != nil {
		return nil, f.ticketsErr
	}
	tickets := f.tickets
	if len(tickets) > count {
		tickets = tickets[:count]
	}
	return tickets, nil
}

func (f *fakeSource) TicketComments(_ context.Context, ticketID int64) ([]zendesk.Comment, error) {
	f.commentCalls++
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	return f.comments[ticketID], nil
}

func (f *fakeSource) ShowUser(_ context.Context, id int64) (*zendesk.User, error) {
	f.showUserCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	name, ok := f.users[id]
	if !ok {
		return nil, f.notFoundErr()
	}
	return &zendesk.User{ID: id, Name: name}, nil
}

func (f *fakeSource) ShowManyUsers(_ context.Context, ids []int64) ([]zendesk.User, error) {
	f.showManyCalls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	var users []zendesk.User
	for _, id := range ids {
		if name, ok := f.users[id]; ok {
			users = append(users, zendesk.User{ID: id, Name: name})
		}
	}
	return users, nil
}

func (f *fakeSource) SearchTickets(context.Context, string) ([]zendesk.Ticket, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeSource) Probe(context.Context) (zendesk.ProbeResult, error) {
	return zendesk.ProbeResult{StatusCode: 200, Body: "{}"}, nil
}

func (f *fakeSource) notFoundErr() error {
	return errNotFound
}
