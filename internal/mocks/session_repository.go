package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, userID, ttl)
	return args.Error(0)
}

func (m *SessionRepository) UserID(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}
