package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forum-backend/internal/domain"
)

type TopicRepository struct {
	mock.Mock
}

func (m *TopicRepository) Insert(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *TopicRepository) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *TopicRepository) GetBySlugAndView(ctx context.Context, slug string) (*domain.Topic, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *TopicRepository) List(ctx context.Context, params domain.TopicListParams) ([]domain.Topic, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Topic), args.Get(1).(int64), args.Error(2)
}

func (m *TopicRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TopicRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *TopicRepository) IncrementCommentCount(ctx context.Context, id string, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *TopicRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Topic, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Topic), args.Error(1)
}

func (m *TopicRepository) AddVote(ctx context.Context, id, userID string, down bool) error {
	args := m.Called(ctx, id, userID, down)
	return args.Error(0)
}

func (m *TopicRepository) RemoveVote(ctx context.Context, id, userID string, down bool) error {
	args := m.Called(ctx, id, userID, down)
	return args.Error(0)
}

func (m *TopicRepository) UpdateAuthorName(ctx context.Context, authorID, authorName string) error {
	args := m.Called(ctx, authorID, authorName)
	return args.Error(0)
}

func (m *TopicRepository) SetPoll(ctx context.Context, id string, poll *domain.Poll) error {
	args := m.Called(ctx, id, poll)
	return args.Error(0)
}

func (m *TopicRepository) TopContributors(ctx context.Context, limit int) ([]domain.Contributor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contributor), args.Error(1)
}

func (m *TopicRepository) Spaces(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
