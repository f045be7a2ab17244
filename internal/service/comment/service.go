package comment

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"forum-backend/internal/domain"
	"forum-backend/internal/repository"
)

const topHelpersLimit = 3

// EventPublisher is the fan-out side channel invoked after successful
// writes. Implementations must be best effort and never return delivery
// failures to the store.
type EventPublisher interface {
	CommentCreated(comment domain.Comment)
	CommentsDeleted(topicID string, commentIDs []string)
}

type Service interface {
	// ListThread returns the topic's full comment tree as a flat slice with
	// parent links, oldest first. An unknown topic yields an empty slice.
	ListThread(ctx context.Context, topicID string) ([]domain.Comment, error)
	Create(ctx context.Context, authorID string, input domain.CreateCommentInput) (*domain.Comment, error)
	ToggleUpvote(ctx context.Context, commentID, userID string) (*domain.Comment, error)
	ToggleDownvote(ctx context.Context, commentID, userID string) (*domain.Comment, error)
	// Delete removes the comment and its whole descendant subtree; only the
	// author may delete. Returns every deleted id.
	Delete(ctx context.Context, commentID, requesterID string) ([]string, error)
	TopHelpers(ctx context.Context) ([]domain.TopHelper, error)
}

type service struct {
	comments  repository.CommentRepository
	topics    repository.TopicRepository
	users     repository.UserRepository
	publisher EventPublisher
}

func NewService(comments repository.CommentRepository, topics repository.TopicRepository, users repository.UserRepository, publisher EventPublisher) Service {
	return &service{
		comments:  comments,
		topics:    topics,
		users:     users,
		publisher: publisher,
	}
}

func (s *service) ListThread(ctx context.Context, topicID string) ([]domain.Comment, error) {
	return s.comments.ListByTopic(ctx, topicID)
}

func (s *service) Create(ctx context.Context, authorID string, input domain.CreateCommentInput) (*domain.Comment, error) {
	if strings.TrimSpace(input.Body) == "" {
		return nil, fmt.Errorf("comment body must not be empty: %w", domain.ErrValidation)
	}

	exists, err := s.topics.Exists(ctx, input.TopicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("topic %s: %w", input.TopicID, domain.ErrNotFound)
	}

	if input.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		// A parent from another topic would stitch two threads together.
		if parent.TopicID != input.TopicID {
			return nil, fmt.Errorf("parent comment %s not in topic %s: %w",
				parent.ID, input.TopicID, domain.ErrNotFound)
		}
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:              uuid.NewString(),
		TopicID:         input.TopicID,
		AuthorID:        author.ID,
		AuthorName:      author.Username,
		ParentCommentID: input.ParentCommentID,
		Body:            input.Body,
		Upvoters:        []string{},
		Downvoters:      []string{},
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.topics.IncrementCommentCount(ctx, input.TopicID, 1); err != nil {
		// The comment is persisted; a drifted counter is not worth failing
		// the write over.
		log.Printf("comment: increment counter for topic %s: %v", input.TopicID, err)
	}

	if s.publisher != nil {
		s.publisher.CommentCreated(*comment)
	}

	return comment, nil
}

func (s *service) ToggleUpvote(ctx context.Context, commentID, userID string) (*domain.Comment, error) {
	return s.toggleVote(ctx, commentID, userID, false)
}

func (s *service) ToggleDownvote(ctx context.Context, commentID, userID string) (*domain.Comment, error) {
	return s.toggleVote(ctx, commentID, userID, true)
}

// toggleVote keeps the two voter sets mutually exclusive: voting the same
// way twice removes the vote, voting the other way moves it. The store
// mutates membership per user ($addToSet/$pull), so concurrent voters
// never overwrite each other's entries.
func (s *service) toggleVote(ctx context.Context, commentID, userID string, down bool) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	voted, other := comment.Upvoters, comment.Downvoters
	if down {
		voted, other = comment.Downvoters, comment.Upvoters
	}

	if slices.Contains(voted, userID) {
		if err := s.comments.RemoveVote(ctx, commentID, userID, down); err != nil {
			return nil, err
		}
		voted = remove(voted, userID)
	} else {
		if err := s.comments.AddVote(ctx, commentID, userID, down); err != nil {
			return nil, err
		}
		voted = append(voted, userID)
		other = remove(other, userID)
	}

	if down {
		comment.Upvoters, comment.Downvoters = other, voted
	} else {
		comment.Upvoters, comment.Downvoters = voted, other
	}
	return comment, nil
}

func (s *service) Delete(ctx context.Context, commentID, requesterID string) ([]string, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, fmt.Errorf("only the author may delete a comment: %w", domain.ErrForbidden)
	}

	// Collect the full descendant set before mutating the store, walking
	// parent links level by level within the topic.
	ids := []string{comment.ID}
	frontier := []string{comment.ID}
	for len(frontier) > 0 {
		children, err := s.comments.ChildIDs(ctx, comment.TopicID, frontier)
		if err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}

	deleted, err := s.comments.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if err := s.topics.IncrementCommentCount(ctx, comment.TopicID, -deleted); err != nil {
		log.Printf("comment: decrement counter for topic %s: %v", comment.TopicID, err)
	}

	if s.publisher != nil {
		s.publisher.CommentsDeleted(comment.TopicID, ids)
	}

	return ids, nil
}

func (s *service) TopHelpers(ctx context.Context) ([]domain.TopHelper, error) {
	return s.comments.TopHelpers(ctx, topHelpersLimit)
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
