package domain

import "time"

// Comment is a node in a topic's reply tree. ParentCommentID is nil for
// top-level comments; every ancestor chain terminates at a top-level comment
// within the same topic. Upvoters and Downvoters hold user ids and are
// mutually exclusive per user.
type Comment struct {
	ID              string    `json:"id" bson:"_id"`
	TopicID         string    `json:"topic_id" bson:"topic_id"`
	AuthorID        string    `json:"author_id" bson:"author_id"`
	AuthorName      string    `json:"author_name" bson:"author_name"`
	ParentCommentID *string   `json:"parent_comment_id" bson:"parent_comment_id,omitempty"`
	Body            string    `json:"body" bson:"body"`
	Upvoters        []string  `json:"upvoters" bson:"upvoters"`
	Downvoters      []string  `json:"downvoters" bson:"downvoters"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

type CreateCommentInput struct {
	TopicID         string  `json:"topic_id"`
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// TopHelper is one row of the most-active-commenters aggregation.
type TopHelper struct {
	AuthorID   string `json:"author_id" bson:"_id"`
	AuthorName string `json:"author_name" bson:"author_name"`
	Count      int64  `json:"count" bson:"count"`
}
