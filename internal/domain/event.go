package domain

// Realtime event names form a closed set; payloads are tagged by Event.Name
// rather than being ad hoc objects.
const (
	// client -> server
	EventJoinTopic  = "join_topic"
	EventLeaveTopic = "leave_topic"

	// server -> client
	EventReceiveComment  = "receive_comment"
	EventCommentsDeleted = "comments_deleted"
)

// Event is the JSON envelope pushed over a live connection.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

type CommentsDeletedPayload struct {
	TopicID    string   `json:"topic_id"`
	CommentIDs []string `json:"comment_ids"`
}

func NewCommentEvent(c Comment) Event {
	return Event{Name: EventReceiveComment, Data: c}
}

func NewCommentsDeletedEvent(topicID string, commentIDs []string) Event {
	return Event{Name: EventCommentsDeleted, Data: CommentsDeletedPayload{
		TopicID:    topicID,
		CommentIDs: commentIDs,
	}}
}
