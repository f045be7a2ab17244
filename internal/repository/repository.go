package repository

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	User    UserRepository
	Topic   TopicRepository
	Comment CommentRepository
	Session SessionRepository
}

func NewRepositories(db *mongo.Database, rdb *redis.Client) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Topic:   NewTopicRepository(db),
		Comment: NewCommentRepository(db),
		Session: NewSessionRepository(rdb),
	}
}
