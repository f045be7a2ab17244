package liveclient

import "time"

// Event names on the live connection.
const (
	// client -> server
	eventJoinTopic  = "join_topic"
	eventLeaveTopic = "leave_topic"

	// server -> client
	eventReceiveComment  = "receive_comment"
	eventCommentsDeleted = "comments_deleted"
)

// Comment is one thread entry as the server serializes it.
type Comment struct {
	ID              string    `json:"id"`
	TopicID         string    `json:"topic_id"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	ParentCommentID *string   `json:"parent_comment_id"`
	Body            string    `json:"body"`
	Upvoters        []string  `json:"upvoters"`
	Downvoters      []string  `json:"downvoters"`
	CreatedAt       time.Time `json:"created_at"`
}

type CommentsDeletedPayload struct {
	TopicID    string   `json:"topic_id"`
	CommentIDs []string `json:"comment_ids"`
}
