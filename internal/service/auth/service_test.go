package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"forum-backend/internal/config"
	"forum-backend/internal/domain"
	"forum-backend/internal/mocks"
	"forum-backend/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func newFixture() (*mocks.UserRepository, *mocks.SessionRepository, *mocks.Mailer, auth.Service) {
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)
	mailer := new(mocks.Mailer)
	svc := auth.NewService(userRepo, sessionRepo, mailer, testConfig())
	return userRepo, sessionRepo, mailer, svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	}

	t.Run("Success", func(t *testing.T) {
		userRepo, sessionRepo, mailer, svc := newFixture()

		userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
		userRepo.On("Insert", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com" &&
				u.PasswordHash != "" && u.PasswordHash != "correct horse"
		})).Return(nil).Once()
		mailer.On("SendWelcomeEmail", ctx, "alice@example.com", "alice").Return(nil).Once()
		sessionRepo.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 7*24*time.Hour).Return(nil).Once()

		user, pair, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Len(t, pair.RefreshToken, 64)
		userRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("Short password", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		short := input
		short.Password = "1234567"
		_, _, err := svc.Register(ctx, short)

		assert.ErrorIs(t, err, domain.ErrValidation)
		userRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Email taken", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Mailer failure does not block signup", func(t *testing.T) {
		userRepo, sessionRepo, mailer, svc := newFixture()

		userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
		userRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
		mailer.On("SendWelcomeEmail", ctx, "alice@example.com", "alice").Return(assert.AnError).Once()
		sessionRepo.On("Save", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		_, pair, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		userRepo, sessionRepo, _, svc := newFixture()

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()
		sessionRepo.On("Save", ctx, mock.Anything, "user-1", mock.Anything).Return(nil).Once()

		user, pair, err := svc.Login(ctx, domain.LoginInput{
			Email:    "alice@example.com",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo, sessionRepo, _, svc := newFixture()

		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "alice@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown email reads the same as wrong password", func(t *testing.T) {
		userRepo, _, _, svc := newFixture()

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	userRepo, sessionRepo, _, svc := newFixture()

	stored := &domain.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}

	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(stored, nil).Once()
	sessionRepo.On("Save", ctx, mock.Anything, "user-1", mock.Anything).Return(nil)

	// MinCost is irrelevant here, Login only compares hashes.
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored.PasswordHash = string(hashed)

	_, pair, err := svc.Login(ctx, domain.LoginInput{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = svc.ValidateAccessToken(pair.AccessToken + "tampered")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	ctx := context.Background()
	userRepo, sessionRepo, _, svc := newFixture()

	stored := &domain.User{ID: "user-1", Username: "alice"}

	sessionRepo.On("UserID", ctx, mock.AnythingOfType("string")).Return("user-1", nil).Once()
	userRepo.On("GetByID", ctx, "user-1").Return(stored, nil).Once()
	sessionRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil).Once()
	sessionRepo.On("Save", ctx, mock.Anything, "user-1", mock.Anything).Return(nil).Once()

	pair, err := svc.RefreshToken(ctx, "some-presented-token")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	// The presented token was consumed before the new one was issued.
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_RefreshUnknownToken(t *testing.T) {
	ctx := context.Background()
	_, sessionRepo, _, svc := newFixture()

	sessionRepo.On("UserID", ctx, mock.AnythingOfType("string")).Return("", domain.ErrUnauthorized).Once()

	_, err := svc.RefreshToken(ctx, "revoked-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
