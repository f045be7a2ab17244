package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum-backend/internal/domain"
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetMany resolves a set of user ids; missing ids are simply absent
	// from the result.
	GetMany(ctx context.Context, ids []string) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateProfile persists the mutable profile fields of user.
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetAvatar(ctx context.Context, id, url string) error
	// Follow records followerID following followeeID on both sides.
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
}

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("username or email taken: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) getOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, bson.M{"username": username})
}

func (r *userRepository) GetMany(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"username":      user.Username,
			"email":         user.Email,
			"bio":           user.Bio,
			"password_hash": user.PasswordHash,
		},
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("username or email taken: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) SetAvatar(ctx context.Context, id, url string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"avatar_url": url},
	})
	if err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *userRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := r.updateEdge(ctx, "$addToSet", followerID, followeeID); err != nil {
		return err
	}
	return nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return r.updateEdge(ctx, "$pull", followerID, followeeID)
}

func (r *userRepository) updateEdge(ctx context.Context, op, followerID, followeeID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": followerID}, bson.M{
		op: bson.M{"following": followeeID},
	})
	if err != nil {
		return fmt.Errorf("update following: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", followerID, domain.ErrNotFound)
	}

	res, err = r.col.UpdateOne(ctx, bson.M{"_id": followeeID}, bson.M{
		op: bson.M{"followers": followerID},
	})
	if err != nil {
		return fmt.Errorf("update followers: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", followeeID, domain.ErrNotFound)
	}
	return nil
}
