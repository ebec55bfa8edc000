// Package store defines the persistence interfaces consumed by the service
// layer. The MongoDB implementation lives in store/mongodb; tests substitute
// in-memory fakes.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
)

var (
	// ErrNotFound is returned when a single-document lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique index. Use
	// DuplicateField to recover the offending field when known.
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError wraps ErrDuplicate with the unique field that collided.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "duplicate key: " + e.Field
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// DuplicateField extracts the colliding field name from err, if err carries
// one.
func DuplicateField(err error) string {
	var d *DuplicateError
	if errors.As(err, &d) {
		return d.Field
	}
	return ""
}

// Sort orders for post queries.
type Sort int

const (
	// SortNewest orders by created_at descending.
	SortNewest Sort = iota
	// SortPopular orders by like_count, comment_count, created_at, all
	// descending.
	SortPopular
)

// FeedUnion selects posts owned by any of Owners, or posts matching the
// trending heuristic: created at or after TrendingSince with
// like_count+comment_count > 0. With no Owners the union degrades to the
// trending branch alone.
type FeedUnion struct {
	Owners        []primitive.ObjectID
	TrendingSince time.Time
}

// SearchFilter matches posts by full-text search, case-insensitive substring
// on title or description, or membership in TaggedIDs (posts carrying a
// matching hashtag).
type SearchFilter struct {
	Query     string
	TaggedIDs []primitive.ObjectID
}

// PostFilter describes a post query. Every filter implicitly selects only
// active posts: is_deleted=false and is_available=true. Non-zero fields are
// combined with AND; the unions inside Feed and Search are the only OR
// semantics.
type PostFilter struct {
	Category     *primitive.ObjectID
	CreatedSince time.Time
	Feed         *FeedUnion
	Search       *SearchFilter
}

// NearbyPost is a post with its distance from the query point, produced by a
// geospatial query in ascending-distance order.
type NearbyPost struct {
	models.Post
	DistanceMeters float64
}

type PostStore interface {
	// GetByID returns the post whether or not it is soft-deleted; callers
	// decide how to treat is_deleted.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Find(ctx context.Context, f PostFilter, sort Sort, skip, limit int64) ([]models.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	// FindNearby returns active posts with a location within radiusMeters of
	// (lat, lng), ordered by ascending true distance across the whole result
	// set, then paginated.
	FindNearby(ctx context.Context, lat, lng float64, radiusMeters int, skip, limit int64) ([]NearbyPost, error)
	CountNearby(ctx context.Context, lat, lng float64, radiusMeters int) (int64, error)
	IncLikeCount(ctx context.Context, id primitive.ObjectID, delta int) error
	IncCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error
	IncShareCount(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

type CategoryStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error)
}

type MediaStore interface {
	// ByPostIDs returns each post's media ordered by sort_order.
	ByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.PostMedia, error)
}

type HashtagStore interface {
	NamesByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]string, error)
	// PostIDsMatching returns ids of posts tagged with any hashtag whose name
	// case-insensitively contains q.
	PostIDsMatching(ctx context.Context, q string) ([]primitive.ObjectID, error)
}

// PairStore covers Like and Bookmark: unique (user, post) pairs whose
// existence is the whole state.
type PairStore interface {
	// Set reports which of postIDs the user has a pair row for.
	Set(ctx context.Context, userID primitive.ObjectID, postIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	// Insert creates the pair, returning ErrDuplicate if it already exists.
	Insert(ctx context.Context, userID, postID primitive.ObjectID) error
	// Delete removes the pair and reports whether a row was actually removed.
	Delete(ctx context.Context, userID, postID primitive.ObjectID) (bool, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	// ByPost lists non-deleted comments newest first.
	ByPost(ctx context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

type FollowStore interface {
	FollowingIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error)
	Insert(ctx context.Context, followerID, followingID primitive.ObjectID) error
	Delete(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error)
}

// Store bundles every collection's store for injection into services.
type Store struct {
	Posts      PostStore
	Users      UserStore
	Categories CategoryStore
	Media      MediaStore
	Hashtags   HashtagStore
	Likes      PairStore
	Bookmarks  PairStore
	Comments   CommentStore
	Follows    FollowStore
}
