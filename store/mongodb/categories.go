package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/models"
	"isoko/store"
)

type categories struct {
	c *mongo.Collection
}

func (s *categories) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *categories) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{"sort_order", 1}, {"name", 1}})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Category
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *categories) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	result := make(map[primitive.ObjectID]models.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Category
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.ID] = r
	}
	return result, nil
}
