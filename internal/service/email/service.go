package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"forum-backend/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, username string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to the forum, {{.Username}}!</h2>
<p>Your account is ready. Jump into a space, start a topic or answer one.</p>
<p><a href="{{.Link}}">Open the forum</a></p>
`))

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, username string) error {
	var body bytes.Buffer
	err := welcomeTemplate.Execute(&body, struct {
		Username string
		Link     string
	}{
		Username: username,
		Link:     s.cfg.ClientURL,
	})
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Forum <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: "Welcome to the forum!",
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}
