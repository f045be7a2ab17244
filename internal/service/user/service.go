package user

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"forum-backend/internal/domain"
	"forum-backend/internal/repository"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Topics and Comments list everything the named user authored, newest
	// first.
	Topics(ctx context.Context, username string) ([]domain.Topic, error)
	Comments(ctx context.Context, username string) ([]domain.Comment, error)
	Followers(ctx context.Context, username string) ([]domain.User, error)
	Following(ctx context.Context, username string) ([]domain.User, error)
	// Follow makes followerID follow the user named username.
	Follow(ctx context.Context, followerID, username string) error
	Unfollow(ctx context.Context, followerID, username string) error
	// UpdateProfile applies the non-nil fields of input to the user's own
	// profile. A username change cascades into the denormalized author
	// names on the user's topics and comments.
	UpdateProfile(ctx context.Context, userID string, input domain.UpdateProfileInput) (*domain.User, error)
	SetAvatar(ctx context.Context, userID, url string) error
}

type service struct {
	users    repository.UserRepository
	topics   repository.TopicRepository
	comments repository.CommentRepository
}

func NewService(users repository.UserRepository, topics repository.TopicRepository, comments repository.CommentRepository) Service {
	return &service{
		users:    users,
		topics:   topics,
		comments: comments,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *service) Topics(ctx context.Context, username string) ([]domain.Topic, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.topics.ListByAuthor(ctx, user.ID)
}

func (s *service) Comments(ctx context.Context, username string) ([]domain.Comment, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByAuthor(ctx, user.ID)
}

func (s *service) Followers(ctx context.Context, username string) ([]domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.users.GetMany(ctx, user.Followers)
}

func (s *service) Following(ctx context.Context, username string) ([]domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.users.GetMany(ctx, user.Following)
}

func (s *service) Follow(ctx context.Context, followerID, username string) error {
	followee, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if followee.ID == followerID {
		return fmt.Errorf("cannot follow yourself: %w", domain.ErrValidation)
	}
	return s.users.Follow(ctx, followerID, followee.ID)
}

func (s *service) Unfollow(ctx context.Context, followerID, username string) error {
	followee, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.users.Unfollow(ctx, followerID, followee.ID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldUsername := user.Username

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, fmt.Errorf("username must not be empty: %w", domain.ErrValidation)
		}
		user.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, fmt.Errorf("email must not be empty: %w", domain.ErrValidation)
		}
		user.Email = email
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil ||
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.CurrentPassword)) != nil {
			return nil, fmt.Errorf("current password is wrong: %w", domain.ErrUnauthorized)
		}
		if len(*input.NewPassword) < 8 {
			return nil, fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	// The unique indexes on username and email turn a collision into
	// ErrConflict inside the repository.
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	if user.Username != oldUsername {
		// Denormalized author names on existing content follow the rename.
		if err := s.topics.UpdateAuthorName(ctx, user.ID, user.Username); err != nil {
			log.Printf("user: rename cascade on topics for %s: %v", user.ID, err)
		}
		if err := s.comments.UpdateAuthorName(ctx, user.ID, user.Username); err != nil {
			log.Printf("user: rename cascade on comments for %s: %v", user.ID, err)
		}
	}

	return user, nil
}

func (s *service) SetAvatar(ctx context.Context, userID, url string) error {
	return s.users.SetAvatar(ctx, userID, url)
}
