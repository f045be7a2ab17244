package service

import (
	"github.com/minio/minio-go/v7"

	"forum-backend/internal/config"
	"forum-backend/internal/repository"
	"forum-backend/internal/service/auth"
	"forum-backend/internal/service/comment"
	"forum-backend/internal/service/email"
	"forum-backend/internal/service/media"
	"forum-backend/internal/service/topic"
	"forum-backend/internal/service/user"
)

type Services struct {
	Auth    auth.Service
	User    user.Service
	Topic   topic.Service
	Comment comment.Service
	Email   email.Service
	Media   media.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, publisher comment.EventPublisher, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)

	return &Services{
		Auth:    auth.NewService(repos.User, repos.Session, emailService, cfg),
		User:    user.NewService(repos.User, repos.Topic, repos.Comment),
		Topic:   topic.NewService(repos.Topic, repos.Comment, repos.User),
		Comment: comment.NewService(repos.Comment, repos.Topic, repos.User, publisher),
		Email:   emailService,
		Media:   media.NewService(minioClient, cfg),
	}
}
