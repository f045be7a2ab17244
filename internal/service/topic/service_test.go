package topic_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forum-backend/internal/domain"
	"forum-backend/internal/mocks"
	"forum-backend/internal/service/topic"
)

func newFixture() (*mocks.TopicRepository, *mocks.CommentRepository, *mocks.UserRepository, topic.Service) {
	topicRepo := new(mocks.TopicRepository)
	commentRepo := new(mocks.CommentRepository)
	userRepo := new(mocks.UserRepository)
	svc := topic.NewService(topicRepo, commentRepo, userRepo)
	return topicRepo, commentRepo, userRepo, svc
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":              "hello-world",
		"  What's new in Go 1.24?": "what-s-new-in-go-1-24",
		"---already---dashed---":   "already-dashed",
		"ALL CAPS":                 "all-caps",
	}
	for title, want := range cases {
		assert.Equal(t, want, topic.Slugify(title), "title %q", title)
	}
}

func TestTopicService_Create(t *testing.T) {
	ctx := context.Background()
	author := &domain.User{ID: "user-1", Username: "alice"}

	t.Run("Success with poll", func(t *testing.T) {
		topicRepo, _, userRepo, svc := newFixture()

		userRepo.On("GetByID", ctx, "user-1").Return(author, nil).Once()
		topicRepo.On("Insert", ctx, mock.MatchedBy(func(tp *domain.Topic) bool {
			return tp.Slug == "release-notes" && tp.AuthorName == "alice" &&
				tp.Poll != nil && len(tp.Poll.Options) == 2 && tp.Poll.ExpiresAt != nil
		})).Return(nil).Once()

		created, err := svc.Create(ctx, "user-1", domain.CreateTopicInput{
			Title:   "Release Notes",
			Content: "What do you think?",
			Space:   "golang",
			Poll: &domain.CreatePollInput{
				Question:     "Ship it?",
				Options:      []string{"yes", "no"},
				DurationDays: 7,
			},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		topicRepo.AssertExpectations(t)
	})

	t.Run("Blank title", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		_, err := svc.Create(ctx, "user-1", domain.CreateTopicInput{
			Title:   "   ",
			Content: "body",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		topicRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Poll with one option", func(t *testing.T) {
		_, _, userRepo, svc := newFixture()

		userRepo.On("GetByID", ctx, "user-1").Return(author, nil).Once()

		_, err := svc.Create(ctx, "user-1", domain.CreateTopicInput{
			Title:   "Poll time",
			Content: "vote",
			Poll:    &domain.CreatePollInput{Question: "Q?", Options: []string{"only"}},
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		topicRepo, _, userRepo, svc := newFixture()

		userRepo.On("GetByID", ctx, "user-1").Return(author, nil).Once()
		topicRepo.On("Insert", ctx, mock.Anything).Return(domain.ErrConflict).Once()

		_, err := svc.Create(ctx, "user-1", domain.CreateTopicInput{
			Title:   "Hello World",
			Content: "again",
		})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestTopicService_List(t *testing.T) {
	ctx := context.Background()
	topicRepo, _, _, svc := newFixture()

	topicRepo.On("List", ctx, mock.MatchedBy(func(p domain.TopicListParams) bool {
		// Out-of-range paging must be normalized before hitting the store.
		return p.Page == 1 && p.Limit == 10
	})).Return([]domain.Topic{{ID: "t1"}}, int64(25), nil).Once()

	page, err := svc.List(ctx, domain.TopicListParams{Page: -3, Limit: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.TotalTopics)
	assert.Len(t, page.Topics, 1)
}

func TestTopicService_Delete(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Topic{ID: "t1", AuthorID: "user-1"}

	t.Run("Cascades over the comment thread", func(t *testing.T) {
		topicRepo, commentRepo, _, svc := newFixture()

		topicRepo.On("GetByID", ctx, "t1").Return(stored, nil).Once()
		commentRepo.On("DeleteByTopic", ctx, "t1").Return(int64(12), nil).Once()
		topicRepo.On("Delete", ctx, "t1").Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, "t1", "user-1"))
		topicRepo.AssertExpectations(t)
		commentRepo.AssertExpectations(t)
	})

	t.Run("Non-author is rejected", func(t *testing.T) {
		topicRepo, commentRepo, _, svc := newFixture()

		topicRepo.On("GetByID", ctx, "t1").Return(stored, nil).Once()

		err := svc.Delete(ctx, "t1", "intruder")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		commentRepo.AssertNotCalled(t, "DeleteByTopic", mock.Anything, mock.Anything)
	})
}

func TestTopicService_VoteOnPoll(t *testing.T) {
	ctx := context.Background()

	withPoll := func(poll *domain.Poll) *domain.Topic {
		return &domain.Topic{ID: "t1", AuthorID: "user-1", Poll: poll}
	}
	freshPoll := func() *domain.Poll {
		return &domain.Poll{
			Question: "Ship it?",
			Options:  []domain.PollOption{{Text: "yes"}, {Text: "no"}},
			VoterIDs: []string{},
		}
	}

	t.Run("Counts the vote once", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		topicRepo.On("GetByID", ctx, "t1").Return(withPoll(freshPoll()), nil).Once()
		topicRepo.On("SetPoll", ctx, "t1", mock.MatchedBy(func(p *domain.Poll) bool {
			return p.Options[0].Votes == 1 && len(p.VoterIDs) == 1
		})).Return(nil).Once()

		poll, err := svc.VoteOnPoll(ctx, "t1", "u2", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), poll.Options[0].Votes)
	})

	t.Run("Second vote is rejected", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		voted := freshPoll()
		voted.VoterIDs = []string{"u2"}
		topicRepo.On("GetByID", ctx, "t1").Return(withPoll(voted), nil).Once()

		_, err := svc.VoteOnPoll(ctx, "t1", "u2", 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
		topicRepo.AssertNotCalled(t, "SetPoll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired poll", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		expired := freshPoll()
		past := time.Now().Add(-time.Hour)
		expired.ExpiresAt = &past
		topicRepo.On("GetByID", ctx, "t1").Return(withPoll(expired), nil).Once()

		_, err := svc.VoteOnPoll(ctx, "t1", "u2", 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Option out of range", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		topicRepo.On("GetByID", ctx, "t1").Return(withPoll(freshPoll()), nil).Once()

		_, err := svc.VoteOnPoll(ctx, "t1", "u2", 5)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("No poll on topic", func(t *testing.T) {
		topicRepo, _, _, svc := newFixture()

		topicRepo.On("GetByID", ctx, "t1").Return(withPoll(nil), nil).Once()

		_, err := svc.VoteOnPoll(ctx, "t1", "u2", 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTopicService_ToggleUpvote(t *testing.T) {
	ctx := context.Background()
	topicRepo, _, _, svc := newFixture()

	stored := &domain.Topic{
		ID:         "t1",
		AuthorID:   "user-1",
		Upvoters:   []string{},
		Downvoters: []string{"u2"},
	}
	topicRepo.On("GetByID", ctx, "t1").Return(stored, nil).Once()
	// Upvoting moves the user out of the downvoter set in one update.
	topicRepo.On("AddVote", ctx, "t1", "u2", false).Return(nil).Once()

	updated, err := svc.ToggleUpvote(ctx, "t1", "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, updated.Upvoters)
	assert.Empty(t, updated.Downvoters)
	topicRepo.AssertExpectations(t)
}
