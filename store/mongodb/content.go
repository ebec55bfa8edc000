package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/models"
)

type media struct {
	c *mongo.Collection
}

func (m *media) ByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.PostMedia, error) {
	result := make(map[primitive.ObjectID][]models.PostMedia, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	opts := options.Find().SetSort(bson.D{{"post_id", 1}, {"sort_order", 1}})
	cursor, err := m.c.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.PostMedia
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.PostID] = append(result[r.PostID], r)
	}
	return result, nil
}

type hashtags struct {
	tags  *mongo.Collection
	joins *mongo.Collection
}

func (h *hashtags) NamesByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]string, error) {
	result := make(map[primitive.ObjectID][]string, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	cursor, err := h.joins.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.PostHashtag
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return result, nil
	}

	tagIDs := make([]primitive.ObjectID, 0, len(links))
	for _, l := range links {
		tagIDs = append(tagIDs, l.HashtagID)
	}

	tagCursor, err := h.tags.Find(ctx, bson.M{"_id": bson.M{"$in": tagIDs}})
	if err != nil {
		return nil, err
	}
	defer tagCursor.Close(ctx)

	var tags []models.Hashtag
	if err := tagCursor.All(ctx, &tags); err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(tags))
	for _, t := range tags {
		names[t.ID] = t.Name
	}
	for _, l := range links {
		if name, ok := names[l.HashtagID]; ok {
			result[l.PostID] = append(result[l.PostID], name)
		}
	}
	return result, nil
}

func (h *hashtags) PostIDsMatching(ctx context.Context, q string) ([]primitive.ObjectID, error) {
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	cursor, err := h.tags.Find(ctx, bson.M{"name": rx})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []models.Hashtag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}

	tagIDs := make([]primitive.ObjectID, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}

	joinCursor, err := h.joins.Find(ctx, bson.M{"hashtag_id": bson.M{"$in": tagIDs}})
	if err != nil {
		return nil, err
	}
	defer joinCursor.Close(ctx)

	var links []models.PostHashtag
	if err := joinCursor.All(ctx, &links); err != nil {
		return nil, err
	}

	postIDs := make([]primitive.ObjectID, 0, len(links))
	for _, l := range links {
		postIDs = append(postIDs, l.PostID)
	}
	return postIDs, nil
}
