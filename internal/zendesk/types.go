package zendesk

import "time"

// Ticket is the wire representation returned by the tickets and search
// endpoints.
type Ticket struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	RequesterID int64     `json:"requester_id"`
	AssigneeID  *int64    `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Comment is the wire representation of a ticket comment.
type Comment struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	HTMLBody  string    `json:"html_body"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the wire representation of a Zendesk user.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ticketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

type userResponse struct {
	User User `json:"user"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type searchResponse struct {
	Results  []Ticket `json:"results"`
	NextPage string   `json:"next_page"`
}
