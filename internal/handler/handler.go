package handler

import (
	"forum-backend/internal/realtime"
	"forum-backend/internal/service"
)

type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Topic   *TopicHandler
	Comment *CommentHandler
	Media   *MediaHandler
	WS      *WSHandler
}

func NewHandlers(services *service.Services, registry *realtime.Registry) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(services.Auth),
		User:    NewUserHandler(services.User, services.Media),
		Topic:   NewTopicHandler(services.Topic),
		Comment: NewCommentHandler(services.Comment),
		Media:   NewMediaHandler(services.Media),
		WS:      NewWSHandler(registry),
	}
}
