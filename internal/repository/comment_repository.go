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

type CommentRepository interface {
	Insert(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByTopic returns the whole thread flat, oldest first, with parent
	// links intact. An unknown topic yields an empty slice, not an error.
	ListByTopic(ctx context.Context, topicID string) ([]domain.Comment, error)
	// ChildIDs returns the ids of direct replies to any of parentIDs,
	// restricted to topicID.
	ChildIDs(ctx context.Context, topicID string, parentIDs []string) ([]string, error)
	// ListByAuthor returns a user's comments across all topics, newest
	// first.
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	DeleteByTopic(ctx context.Context, topicID string) (int64, error)
	// AddVote puts userID into one voter set and pulls it from the other
	// in a single update, so concurrent voters cannot clobber each other.
	AddVote(ctx context.Context, id, userID string, down bool) error
	RemoveVote(ctx context.Context, id, userID string, down bool) error
	UpdateAuthorName(ctx context.Context, authorID, authorName string) error
	TopHelpers(ctx context.Context, limit int) ([]domain.TopHelper, error)
}

type commentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{col: db.Collection("comments")}
}

func (r *commentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	if _, err := r.col.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByTopic(ctx context.Context, topicID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"topic_id": topicID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	comments := []domain.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) ChildIDs(ctx context.Context, topicID string, parentIDs []string) ([]string, error) {
	filter := bson.M{
		"topic_id":          topicID,
		"parent_comment_id": bson.M{"$in": parentIDs},
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list child comments: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode child comment: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete comments: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *commentRepository) DeleteByTopic(ctx context.Context, topicID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"topic_id": topicID})
	if err != nil {
		return 0, fmt.Errorf("delete topic comments: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments by author: %w", err)
	}
	defer cur.Close(ctx)

	comments := []domain.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) AddVote(ctx context.Context, id, userID string, down bool) error {
	voted, other := voteFields(down)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{voted: userID},
		"$pull":     bson.M{other: userID},
	})
	if err != nil {
		return fmt.Errorf("add comment vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *commentRepository) RemoveVote(ctx context.Context, id, userID string, down bool) error {
	voted, _ := voteFields(down)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{voted: userID},
	})
	if err != nil {
		return fmt.Errorf("remove comment vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *commentRepository) UpdateAuthorName(ctx context.Context, authorID, authorName string) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"author_id": authorID}, bson.M{
		"$set": bson.M{"author_name": authorName},
	})
	if err != nil {
		return fmt.Errorf("update comment author name: %w", err)
	}
	return nil
}

func voteFields(down bool) (voted, other string) {
	if down {
		return "downvoters", "upvoters"
	}
	return "upvoters", "downvoters"
}

func (r *commentRepository) TopHelpers(ctx context.Context, limit int) ([]domain.TopHelper, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author_id"},
			{Key: "author_name", Value: bson.D{{Key: "$first", Value: "$author_name"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top helpers: %w", err)
	}
	defer cur.Close(ctx)

	helpers := []domain.TopHelper{}
	if err := cur.All(ctx, &helpers); err != nil {
		return nil, fmt.Errorf("decode top helpers: %w", err)
	}
	return helpers, nil
}
