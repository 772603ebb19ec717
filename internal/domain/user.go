package domain

// User is the resolved identity behind ticket requesters, assignees and
// comment authors.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
