package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"forum-backend/internal/domain"
	"forum-backend/internal/mocks"
	"forum-backend/internal/service/user"
)

func newFixture() (*mocks.UserRepository, *mocks.TopicRepository, *mocks.CommentRepository, user.Service) {
	userRepo := new(mocks.UserRepository)
	topicRepo := new(mocks.TopicRepository)
	commentRepo := new(mocks.CommentRepository)
	svc := user.NewService(userRepo, topicRepo, commentRepo)
	return userRepo, topicRepo, commentRepo, svc
}

func strPtr(s string) *string { return &s }

func TestUserService_Follow(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: "bob-id", Username: "bob"}

	t.Run("Success", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "bob").Return(bob, nil).Once()
		userRepo.On("Follow", ctx, "alice-id", "bob-id").Return(nil).Once()

		require.NoError(t, svc.Follow(ctx, "alice-id", "bob"))
		userRepo.AssertExpectations(t)
	})

	t.Run("Self follow", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "bob").Return(bob, nil).Once()

		err := svc.Follow(ctx, "bob-id", "bob")
		assert.ErrorIs(t, err, domain.ErrValidation)
		userRepo.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown username", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

		err := svc.Follow(ctx, "alice-id", "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserService_Unfollow(t *testing.T) {
	ctx := context.Background()
	userRepo, _, _, svc := newFixture()

	userRepo.On("GetByUsername", ctx, "bob").Return(&domain.User{ID: "bob-id", Username: "bob"}, nil).Once()
	userRepo.On("Unfollow", ctx, "alice-id", "bob-id").Return(nil).Once()

	require.NoError(t, svc.Unfollow(ctx, "alice-id", "bob"))
	userRepo.AssertExpectations(t)
}

func TestUserService_AuthoredContent(t *testing.T) {
	ctx := context.Background()
	alice := &domain.User{ID: "alice-id", Username: "alice"}

	t.Run("Topics", func(t *testing.T) {
		userRepo, topicRepo, _, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()
		topicRepo.On("ListByAuthor", ctx, "alice-id").Return([]domain.Topic{{ID: "t1"}, {ID: "t2"}}, nil).Once()

		topics, err := svc.Topics(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, topics, 2)
	})

	t.Run("Comments", func(t *testing.T) {
		userRepo, _, commentRepo, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Once()
		commentRepo.On("ListByAuthor", ctx, "alice-id").Return([]domain.Comment{{ID: "c1"}}, nil).Once()

		comments, err := svc.Comments(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("Unknown user", func(t *testing.T) {
		userRepo, topicRepo, _, svc := newFixture()

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.Topics(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		topicRepo.AssertNotCalled(t, "ListByAuthor", mock.Anything, mock.Anything)
	})
}

func TestUserService_FollowLists(t *testing.T) {
	ctx := context.Background()
	userRepo, _, _, svc := newFixture()

	alice := &domain.User{
		ID:        "alice-id",
		Username:  "alice",
		Followers: []string{"bob-id", "carol-id"},
		Following: []string{"bob-id"},
	}

	userRepo.On("GetByUsername", ctx, "alice").Return(alice, nil).Twice()
	userRepo.On("GetMany", ctx, []string{"bob-id", "carol-id"}).
		Return([]domain.User{{ID: "bob-id"}, {ID: "carol-id"}}, nil).Once()
	userRepo.On("GetMany", ctx, []string{"bob-id"}).
		Return([]domain.User{{ID: "bob-id"}}, nil).Once()

	followers, err := svc.Followers(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.Following(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, following, 1)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := func() *domain.User {
		return &domain.User{
			ID:           "alice-id",
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: string(hashed),
		}
	}

	t.Run("Bio change does not cascade", func(t *testing.T) {
		userRepo, topicRepo, commentRepo, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()
		userRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Bio == "gopher" && u.Username == "alice"
		})).Return(nil).Once()

		updated, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			Bio: strPtr("  gopher  "),
		})

		require.NoError(t, err)
		assert.Equal(t, "gopher", updated.Bio)
		topicRepo.AssertNotCalled(t, "UpdateAuthorName", mock.Anything, mock.Anything, mock.Anything)
		commentRepo.AssertNotCalled(t, "UpdateAuthorName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rename cascades into authored content", func(t *testing.T) {
		userRepo, topicRepo, commentRepo, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()
		userRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice2"
		})).Return(nil).Once()
		topicRepo.On("UpdateAuthorName", ctx, "alice-id", "alice2").Return(nil).Once()
		commentRepo.On("UpdateAuthorName", ctx, "alice-id", "alice2").Return(nil).Once()

		updated, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			Username: strPtr("alice2"),
		})

		require.NoError(t, err)
		assert.Equal(t, "alice2", updated.Username)
		topicRepo.AssertExpectations(t)
		commentRepo.AssertExpectations(t)
	})

	t.Run("Taken username surfaces as conflict", func(t *testing.T) {
		userRepo, topicRepo, _, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()
		userRepo.On("UpdateProfile", ctx, mock.Anything).Return(domain.ErrConflict).Once()

		_, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			Username: strPtr("bob"),
		})

		assert.ErrorIs(t, err, domain.ErrConflict)
		topicRepo.AssertNotCalled(t, "UpdateAuthorName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Password change needs the current password", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()

		_, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			CurrentPassword: strPtr("wrong"),
			NewPassword:     strPtr("a new password"),
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Short new password", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()

		_, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			CurrentPassword: strPtr("old password"),
			NewPassword:     strPtr("short"),
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Blank username rejected", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByID", ctx, "alice-id").Return(stored(), nil).Once()

		_, err := svc.UpdateProfile(ctx, "alice-id", domain.UpdateProfileInput{
			Username: strPtr("   "),
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})
}
