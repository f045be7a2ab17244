package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forum-backend/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListByTopic(ctx context.Context, topicID string) ([]domain.Comment, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) ChildIDs(ctx context.Context, topicID string, parentIDs []string) ([]string, error) {
	args := m.Called(ctx, topicID, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *CommentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) DeleteByTopic(ctx context.Context, topicID string) (int64, error) {
	args := m.Called(ctx, topicID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) AddVote(ctx context.Context, id, userID string, down bool) error {
	args := m.Called(ctx, id, userID, down)
	return args.Error(0)
}

func (m *CommentRepository) RemoveVote(ctx context.Context, id, userID string, down bool) error {
	args := m.Called(ctx, id, userID, down)
	return args.Error(0)
}

func (m *CommentRepository) UpdateAuthorName(ctx context.Context, authorID, authorName string) error {
	args := m.Called(ctx, authorID, authorName)
	return args.Error(0)
}

func (m *CommentRepository) TopHelpers(ctx context.Context, limit int) ([]domain.TopHelper, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopHelper), args.Error(1)
}
