package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/models"
	"isoko/store"
)

// pairs serves both likes and bookmarks: (user_id, post_id) rows under a
// unique compound index.
type pairs struct {
	c *mongo.Collection
}

func (p *pairs) Set(ctx context.Context, userID primitive.ObjectID, postIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	result := make(map[primitive.ObjectID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	cursor, err := p.c.Find(ctx, bson.M{
		"user_id": userID,
		"post_id": bson.M{"$in": postIDs},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PostID primitive.ObjectID `bson:"post_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.PostID] = true
	}
	return result, nil
}

func (p *pairs) Insert(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := p.c.InsertOne(ctx, bson.M{
		"_id":        primitive.NewObjectID(),
		"user_id":    userID,
		"post_id":    postID,
		"created_at": time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateError{Field: "user_id,post_id"}
	}
	return err
}

func (p *pairs) Delete(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	result, err := p.c.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

type comments struct {
	c *mongo.Collection
}

func (s *comments) Insert(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()
	_, err := s.c.InsertOne(ctx, comment)
	return err
}

func (s *comments) ByPost(ctx context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{"created_at", -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.c.Find(ctx, bson.M{"post_id": postID, "is_deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Comment
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *comments) CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"post_id": postID, "is_deleted": false})
}

type follows struct {
	c *mongo.Collection
}

func (f *follows) FollowingIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := f.c.Find(ctx, bson.M{"follower_id": followerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Follow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.FollowingID)
	}
	return ids, nil
}

func (f *follows) Insert(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	_, err := f.c.InsertOne(ctx, bson.M{
		"_id":          primitive.NewObjectID(),
		"follower_id":  followerID,
		"following_id": followingID,
		"created_at":   time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateError{Field: "follower_id,following_id"}
	}
	return err
}

func (f *follows) Delete(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	result, err := f.c.DeleteOne(ctx, bson.M{
		"follower_id":  followerID,
		"following_id": followingID,
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}
