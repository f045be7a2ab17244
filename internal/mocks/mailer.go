package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendWelcomeEmail(ctx context.Context, toEmail, username string) error {
	args := m.Called(ctx, toEmail, username)
	return args.Error(0)
}
