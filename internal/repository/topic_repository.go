package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum-backend/internal/domain"
)

type TopicRepository interface {
	Insert(ctx context.Context, topic *domain.Topic) error
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	// GetBySlugAndView fetches a topic by slug while incrementing its view
	// counter in the same operation.
	GetBySlugAndView(ctx context.Context, slug string) (*domain.Topic, error)
	List(ctx context.Context, params domain.TopicListParams) ([]domain.Topic, int64, error)
	// ListByAuthor returns a user's topics, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Topic, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	IncrementCommentCount(ctx context.Context, id string, delta int64) error
	AddVote(ctx context.Context, id, userID string, down bool) error
	RemoveVote(ctx context.Context, id, userID string, down bool) error
	UpdateAuthorName(ctx context.Context, authorID, authorName string) error
	SetPoll(ctx context.Context, id string, poll *domain.Poll) error
	TopContributors(ctx context.Context, limit int) ([]domain.Contributor, error)
	Spaces(ctx context.Context) ([]string, error)
}

type topicRepository struct {
	col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) TopicRepository {
	return &topicRepository{col: db.Collection("topics")}
}

func (r *topicRepository) Insert(ctx context.Context, topic *domain.Topic) error {
	_, err := r.col.InsertOne(ctx, topic)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("topic slug %q taken: %w", topic.Slug, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

func (r *topicRepository) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&topic)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &topic, nil
}

func (r *topicRepository) GetBySlugAndView(ctx context.Context, slug string) (*domain.Topic, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var topic domain.Topic
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"views_count": 1}},
		opts,
	).Decode(&topic)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("topic %s: %w", slug, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic by slug: %w", err)
	}
	return &topic, nil
}

func (r *topicRepository) List(ctx context.Context, params domain.TopicListParams) ([]domain.Topic, int64, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: params.Search, Options: "i"}}
	}
	if params.Space != "" {
		filter["space"] = params.Space
	}

	var sort bson.D
	switch params.Sort {
	case "popular":
		sort = bson.D{{Key: "views_count", Value: -1}}
	case "most_replied":
		sort = bson.D{{Key: "total_comments", Value: -1}}
	case "most_upvoted":
		sort = bson.D{{Key: "upvoters", Value: -1}}
	default: // latest
		sort = bson.D{{Key: "created_at", Value: -1}}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count topics: %w", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list topics: %w", err)
	}
	defer cur.Close(ctx)

	topics := []domain.Topic{}
	if err := cur.All(ctx, &topics); err != nil {
		return nil, 0, fmt.Errorf("decode topics: %w", err)
	}
	return topics, total, nil
}

func (r *topicRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Topic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list topics by author: %w", err)
	}
	defer cur.Close(ctx)

	topics := []domain.Topic{}
	if err := cur.All(ctx, &topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return topics, nil
}

func (r *topicRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *topicRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("topic exists: %w", err)
	}
	return count > 0, nil
}

func (r *topicRepository) IncrementCommentCount(ctx context.Context, id string, delta int64) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"total_comments": delta},
	})
	if err != nil {
		return fmt.Errorf("increment comment count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *topicRepository) AddVote(ctx context.Context, id, userID string, down bool) error {
	voted, other := voteFields(down)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{voted: userID},
		"$pull":     bson.M{other: userID},
	})
	if err != nil {
		return fmt.Errorf("add topic vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *topicRepository) RemoveVote(ctx context.Context, id, userID string, down bool) error {
	voted, _ := voteFields(down)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{voted: userID},
	})
	if err != nil {
		return fmt.Errorf("remove topic vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *topicRepository) UpdateAuthorName(ctx context.Context, authorID, authorName string) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"author_id": authorID}, bson.M{
		"$set": bson.M{"author_name": authorName},
	})
	if err != nil {
		return fmt.Errorf("update topic author name: %w", err)
	}
	return nil
}

func (r *topicRepository) SetPoll(ctx context.Context, id string, poll *domain.Poll) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"poll": poll},
	})
	if err != nil {
		return fmt.Errorf("set poll: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *topicRepository) TopContributors(ctx context.Context, limit int) ([]domain.Contributor, error) {
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
		return nil, fmt.Errorf("aggregate top contributors: %w", err)
	}
	defer cur.Close(ctx)

	contributors := []domain.Contributor{}
	if err := cur.All(ctx, &contributors); err != nil {
		return nil, fmt.Errorf("decode top contributors: %w", err)
	}
	return contributors, nil
}

func (r *topicRepository) Spaces(ctx context.Context) ([]string, error) {
	values, err := r.col.Distinct(ctx, "space", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}

	spaces := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			spaces = append(spaces, s)
		}
	}
	return spaces, nil
}
