package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hashtag names are stored lowercase and unique.
type Hashtag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	PostCount int64              `bson:"post_count" json:"post_count"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PostHashtag joins posts to hashtags many-to-many.
type PostHashtag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	HashtagID primitive.ObjectID `bson:"hashtag_id" json:"hashtag_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
