package topic

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"forum-backend/internal/domain"
	"forum-backend/internal/repository"
)

const topContributorsLimit = 3

type Service interface {
	Create(ctx context.Context, authorID string, input domain.CreateTopicInput) (*domain.Topic, error)
	List(ctx context.Context, params domain.TopicListParams) (*domain.TopicPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Topic, error)
	// Delete removes the topic and cascades over its whole comment thread;
	// only the author may delete.
	Delete(ctx context.Context, topicID, requesterID string) error
	ToggleUpvote(ctx context.Context, topicID, userID string) (*domain.Topic, error)
	ToggleDownvote(ctx context.Context, topicID, userID string) (*domain.Topic, error)
	VoteOnPoll(ctx context.Context, topicID, userID string, optionIndex int) (*domain.Poll, error)
	TopContributors(ctx context.Context) ([]domain.Contributor, error)
	Spaces(ctx context.Context) ([]string, error)
}

type service struct {
	topics   repository.TopicRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewService(topics repository.TopicRepository, comments repository.CommentRepository, users repository.UserRepository) Service {
	return &service{
		topics:   topics,
		comments: comments,
		users:    users,
	}
}

func (s *service) Create(ctx context.Context, authorID string, input domain.CreateTopicInput) (*domain.Topic, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("title and content must not be empty: %w", domain.ErrValidation)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var poll *domain.Poll
	if input.Poll != nil {
		poll, err = buildPoll(input.Poll)
		if err != nil {
			return nil, err
		}
	}

	topic := &domain.Topic{
		ID:         uuid.NewString(),
		Slug:       Slugify(title),
		Title:      title,
		Content:    content,
		Space:      input.Space,
		Tags:       input.Tags,
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Upvoters:   []string{},
		Downvoters: []string{},
		ImageURL:   input.ImageURL,
		Poll:       poll,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.topics.Insert(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func buildPoll(input *domain.CreatePollInput) (*domain.Poll, error) {
	if strings.TrimSpace(input.Question) == "" || len(input.Options) < 2 {
		return nil, fmt.Errorf("a poll needs a question and at least two options: %w", domain.ErrValidation)
	}

	options := make([]domain.PollOption, 0, len(input.Options))
	for _, text := range input.Options {
		options = append(options, domain.PollOption{Text: text})
	}

	var expiresAt *time.Time
	if input.DurationDays > 0 {
		t := time.Now().UTC().AddDate(0, 0, input.DurationDays)
		expiresAt = &t
	}

	return &domain.Poll{
		Question:  input.Question,
		Options:   options,
		VoterIDs:  []string{},
		ExpiresAt: expiresAt,
	}, nil
}

func (s *service) List(ctx context.Context, params domain.TopicListParams) (*domain.TopicPage, error) {
	params.Normalize()

	topics, total, err := s.topics.List(ctx, params)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return &domain.TopicPage{
		Topics:      topics,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		TotalTopics: total,
	}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	return s.topics.GetBySlugAndView(ctx, slug)
}

func (s *service) Delete(ctx context.Context, topicID, requesterID string) error {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if topic.AuthorID != requesterID {
		return fmt.Errorf("only the author may delete a topic: %w", domain.ErrForbidden)
	}

	if _, err := s.comments.DeleteByTopic(ctx, topicID); err != nil {
		return err
	}
	return s.topics.Delete(ctx, topicID)
}

func (s *service) ToggleUpvote(ctx context.Context, topicID, userID string) (*domain.Topic, error) {
	return s.toggleVote(ctx, topicID, userID, false)
}

func (s *service) ToggleDownvote(ctx context.Context, topicID, userID string) (*domain.Topic, error) {
	return s.toggleVote(ctx, topicID, userID, true)
}

// toggleVote mirrors the comment-vote semantics: per-user membership
// updates keep concurrent voters from clobbering each other.
func (s *service) toggleVote(ctx context.Context, topicID, userID string, down bool) (*domain.Topic, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	voted, other := topic.Upvoters, topic.Downvoters
	if down {
		voted, other = topic.Downvoters, topic.Upvoters
	}

	if slices.Contains(voted, userID) {
		if err := s.topics.RemoveVote(ctx, topicID, userID, down); err != nil {
			return nil, err
		}
		voted = remove(voted, userID)
	} else {
		if err := s.topics.AddVote(ctx, topicID, userID, down); err != nil {
			return nil, err
		}
		voted = append(voted, userID)
		other = remove(other, userID)
	}

	if down {
		topic.Upvoters, topic.Downvoters = other, voted
	} else {
		topic.Upvoters, topic.Downvoters = voted, other
	}
	return topic, nil
}

func (s *service) VoteOnPoll(ctx context.Context, topicID, userID string, optionIndex int) (*domain.Poll, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic.Poll == nil {
		return nil, fmt.Errorf("topic %s has no poll: %w", topicID, domain.ErrNotFound)
	}

	poll := topic.Poll
	if poll.ExpiresAt != nil && time.Now().After(*poll.ExpiresAt) {
		return nil, fmt.Errorf("poll has expired: %w", domain.ErrValidation)
	}
	if slices.Contains(poll.VoterIDs, userID) {
		return nil, fmt.Errorf("already voted on this poll: %w", domain.ErrValidation)
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fmt.Errorf("poll option %d out of range: %w", optionIndex, domain.ErrValidation)
	}

	poll.Options[optionIndex].Votes++
	poll.VoterIDs = append(poll.VoterIDs, userID)

	if err := s.topics.SetPoll(ctx, topicID, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *service) TopContributors(ctx context.Context) ([]domain.Contributor, error) {
	return s.topics.TopContributors(ctx, topContributorsLimit)
}

func (s *service) Spaces(ctx context.Context) ([]string, error) {
	return s.topics.Spaces(ctx)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
