package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
	"isoko/utils"
)

// LatLng is the API-facing coordinate pair, flipped from the stored
// [lng, lat] GeoJSON order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PostView is the denormalized post shape every feed returns: the post
// itself plus owner and category summaries, ordered media, hashtag names and
// the viewer's interaction flags.
type PostView struct {
	ID           primitive.ObjectID      `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Price        float64                 `json:"price"`
	Currency     string                  `json:"currency"`
	Condition    string                  `json:"condition,omitempty"`
	Location     *LatLng                 `json:"location"`
	District     string                  `json:"district,omitempty"`
	Sector       string                  `json:"sector,omitempty"`
	Category     *models.CategorySummary `json:"category"`
	User         *models.UserSummary     `json:"user"`
	Images       []string                `json:"images"`
	Hashtags     []string                `json:"hashtags"`
	LikeCount    int64                   `json:"like_count"`
	CommentCount int64                   `json:"comment_count"`
	ShareCount   int64                   `json:"share_count"`
	ViewCount    int64                   `json:"view_count"`
	IsLiked      bool                    `json:"is_liked"`
	IsBookmarked bool                    `json:"is_bookmarked"`
	CreatedAt    time.Time               `json:"created_at"`
	DistanceKm   *float64                `json:"distance_km,omitempty"`
}

type FeedPage struct {
	Posts      []PostView       `json:"posts"`
	Pagination utils.Pagination `json:"pagination"`
}

type CommentView struct {
	ID        primitive.ObjectID  `json:"id"`
	Content   string              `json:"content"`
	User      *models.UserSummary `json:"user"`
	CreatedAt time.Time           `json:"created_at"`
}

type CommentPage struct {
	Comments   []CommentView    `json:"comments"`
	Pagination utils.Pagination `json:"pagination"`
}
