package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-backend/internal/domain"
)

func newComment(id, topicID string) domain.Comment {
	return domain.Comment{
		ID:         id,
		TopicID:    topicID,
		AuthorID:   "user-1",
		AuthorName: "alice",
		Body:       "hello",
		Upvoters:   []string{},
		Downvoters: []string{},
		CreatedAt:  time.Now().UTC(),
	}
}

func TestPublisher_DeliversOnlyToRoomMembers(t *testing.T) {
	reg := NewRegistry()
	pub := NewPublisher(reg)

	joined1, joined2, outsider := &fakeConn{}, &fakeConn{}, &fakeConn{}
	reg.Join(joined1, "topic-42")
	reg.Join(joined2, "topic-42")
	reg.Join(outsider, "topic-7")

	pub.CommentCreated(newComment("c1", "topic-42"))

	require.Len(t, joined1.received(), 1)
	require.Len(t, joined2.received(), 1)
	assert.Empty(t, outsider.received())

	evt := joined1.received()[0]
	assert.Equal(t, domain.EventReceiveComment, evt.Name)
	assert.Equal(t, "c1", evt.Data.(domain.Comment).ID)
}

func TestPublisher_RoomSwitchStopsDelivery(t *testing.T) {
	reg := NewRegistry()
	pub := NewPublisher(reg)

	conn := &fakeConn{}
	reg.Join(conn, "topic-1")
	reg.Join(conn, "topic-2")

	pub.CommentCreated(newComment("c1", "topic-1"))
	assert.Empty(t, conn.received())

	pub.CommentCreated(newComment("c2", "topic-2"))
	assert.Len(t, conn.received(), 1)
}

func TestPublisher_EmptyRoomIsFine(t *testing.T) {
	reg := NewRegistry()
	pub := NewPublisher(reg)

	// Nobody joined; publishing must simply do nothing.
	pub.CommentCreated(newComment("c1", "topic-5"))
}

func TestPublisher_DeadConnectionDoesNotBlockOthers(t *testing.T) {
	reg := NewRegistry()
	pub := NewPublisher(reg)

	dead := &fakeConn{failSend: true}
	alive := &fakeConn{}
	reg.Join(dead, "topic-5")
	reg.Join(alive, "topic-5")

	pub.CommentCreated(newComment("c1", "topic-5"))

	assert.Len(t, alive.received(), 1)
	assert.True(t, dead.closed)
	// The dead connection is evicted from the room.
	assert.Len(t, reg.Members("topic-5"), 1)
}

func TestPublisher_PerConnectionOrdering(t *testing.T) {
	reg := NewRegistry()
	pub := NewPublisher(reg)

	conn := &fakeConn{}
	reg.Join(conn, "topic-1")

	pub.CommentCreated(newComment("c1", "topic-1"))
	pub.CommentCreated(newComment("c2", "topic-1"))
	pub.CommentsDeleted("topic-1", []string{"c1"})

	events := conn.received()
	require.Len(t, events, 3)
	assert.Equal(t, "c1", events[0].Data.(domain.Comment).ID)
	assert.Equal(t, "c2", events[1].Data.(domain.Comment).ID)
	assert.Equal(t, domain.EventCommentsDeleted, events[2].Name)
	assert.Equal(t, []string{"c1"}, events[2].Data.(domain.CommentsDeletedPayload).CommentIDs)
}
