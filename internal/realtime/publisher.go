package realtime

import (
	"log"

	"forum-backend/internal/domain"
)

// Publisher delivers events to every connection in a topic's room.
// Delivery is best effort: a failed send never propagates to the caller,
// it only evicts the dead connection. Enqueueing is non-blocking (each
// connection writes from its own pump goroutine), so sends to different
// members proceed independently while per-connection ordering follows the
// order of Publish calls.
type Publisher struct {
	registry *Registry
}

func NewPublisher(registry *Registry) *Publisher {
	return &Publisher{registry: registry}
}

func (p *Publisher) CommentCreated(comment domain.Comment) {
	p.broadcast(comment.TopicID, domain.NewCommentEvent(comment))
}

func (p *Publisher) CommentsDeleted(topicID string, commentIDs []string) {
	p.broadcast(topicID, domain.NewCommentsDeletedEvent(topicID, commentIDs))
}

func (p *Publisher) broadcast(topicID string, evt domain.Event) {
	for _, conn := range p.registry.Members(topicID) {
		if err := conn.SendEvent(evt); err != nil {
			log.Printf("realtime: dropping connection from room %s: %v", topicID, err)
			p.registry.Disconnect(conn)
			_ = conn.Close()
		}
	}
}
