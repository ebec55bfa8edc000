package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing condition values.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionUsed    = "used"
)

type Post struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	CategoryID   *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64             `bson:"price" json:"price"`
	Currency     string              `bson:"currency" json:"currency"`
	Condition    string              `bson:"condition,omitempty" json:"condition,omitempty"`
	Location     *GeoPoint           `bson:"location,omitempty" json:"location,omitempty"`
	District     string              `bson:"district,omitempty" json:"district,omitempty"`
	Sector       string              `bson:"sector,omitempty" json:"sector,omitempty"`
	IsAvailable  bool                `bson:"is_available" json:"is_available"`
	IsDeleted    bool                `bson:"is_deleted" json:"is_deleted"`
	ViewCount    int64               `bson:"view_count" json:"view_count"`
	LikeCount    int64               `bson:"like_count" json:"like_count"`
	CommentCount int64               `bson:"comment_count" json:"comment_count"`
	ShareCount   int64               `bson:"share_count" json:"share_count"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

type PostMedia struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID       primitive.ObjectID `bson:"post_id" json:"post_id"`
	MediaURL     string             `bson:"media_url" json:"media_url"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	SortOrder    int                `bson:"sort_order" json:"sort_order"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
