package dto

import "time"

// CommentResponse is one comment in the comments API payload. Body holds the
// summary-truncated text; HTMLBody carries the full rendered body.
type CommentResponse struct {
	ID                 int64     `json:"id"`
	AuthorName         string    `json:"author_name"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedAtFormatted string    `json:"created_at_formatted"`
	Body               string    `json:"body"`
	HTMLBody           string    `json:"html_body"`
}

// CommentsEnvelope is the success shape of GET /api/ticket/:id/comments.
// An empty comment list is a valid result, distinct from the error shape.
type CommentsEnvelope struct {
	Comments    []CommentResponse `json:"comments"`
	Count       int               `json:"count"`
	CacheStatus string            `json:"cache_status"`
}
