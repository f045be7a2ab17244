package mocks

import (
	"github.com/stretchr/testify/mock"

	"forum-backend/internal/domain"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) CommentCreated(comment domain.Comment) {
	m.Called(comment)
}

func (m *EventPublisher) CommentsDeleted(topicID string, commentIDs []string) {
	m.Called(topicID, commentIDs)
}
