package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"isoko/models"
	"isoko/store"
)

type users struct {
	c *mongo.Collection
}

func (u *users) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := u.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *users) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(user.Email)

	_, err := u.c.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateError{Field: duplicateUserField(err)}
	}
	return err
}

// duplicateUserField recovers which unique index collided from the driver's
// error message (index names default to "<field>_1").
func duplicateUserField(err error) string {
	msg := err.Error()
	for _, f := range []string{"email", "phone"} {
		if strings.Contains(msg, f+"_1") {
			return f
		}
	}
	return "email"
}

func (u *users) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	result := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := u.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.User
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.ID] = r
	}
	return result, nil
}
