package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
	"isoko/store"
	"isoko/utils"
)

// trendingWindow bounds the trending heuristic: a post trends while it is at
// most this old and has at least one like or comment.
const trendingWindow = 7 * 24 * time.Hour

// maxQueryLength caps free-text search input.
const maxQueryLength = 100

// FeedService composes the five feed variants. The viewer is optional on
// every call; a nil viewer renders is_liked/is_bookmarked as false.
type FeedService struct {
	store *store.Store
	now   func() time.Time
}

func NewFeedService(st *store.Store) *FeedService {
	return &FeedService{store: st, now: time.Now}
}

// FeedOptions are the shared list parameters. Sort is "newest" (default) or
// "popular"; Category is an optional slug filter for the home feed.
type FeedOptions struct {
	Page     int
	Limit    int
	Category string
	Sort     string
}

// NearbyOptions carry the query point as pointers so a missing coordinate is
// distinguishable from 0 (the equator and prime meridian are real places).
type NearbyOptions struct {
	Lat          *float64
	Lng          *float64
	RadiusMeters int
	Page         int
	Limit        int
}

// Home blends posts from accounts the viewer follows with trending posts.
// With no viewer, or a viewer following nobody, only the trending branch
// applies. One sort spans the whole union.
func (s *FeedService) Home(ctx context.Context, viewer *primitive.ObjectID, opts FeedOptions) (*FeedPage, error) {
	filter := store.PostFilter{}

	if opts.Category != "" {
		cat, err := s.store.Categories.GetBySlug(ctx, opts.Category)
		switch {
		case err == nil:
			filter.Category = &cat.ID
		case errors.Is(err, store.ErrNotFound):
			// An unknown slug on the home feed just drops the filter.
		default:
			return nil, err
		}
	}

	var owners []primitive.ObjectID
	if viewer != nil {
		var err error
		if owners, err = s.store.Follows.FollowingIDs(ctx, *viewer); err != nil {
			return nil, err
		}
	}
	filter.Feed = &store.FeedUnion{
		Owners:        owners,
		TrendingSince: s.now().Add(-trendingWindow),
	}

	sort := store.SortNewest
	if opts.Sort == "popular" {
		sort = store.SortPopular
	}
	return s.page(ctx, viewer, filter, sort, opts.Page, opts.Limit)
}

// Trending lists posts from the last seven days, most engaged first.
func (s *FeedService) Trending(ctx context.Context, viewer *primitive.ObjectID, opts FeedOptions) (*FeedPage, error) {
	filter := store.PostFilter{CreatedSince: s.now().Add(-trendingWindow)}
	return s.page(ctx, viewer, filter, store.SortPopular, opts.Page, opts.Limit)
}

// Nearby lists posts within the radius of the query point, closest first.
// Distance ordering comes from the geospatial query itself, so it holds
// across pages.
func (s *FeedService) Nearby(ctx context.Context, viewer *primitive.ObjectID, opts NearbyOptions) (*FeedPage, error) {
	if opts.Lat == nil || opts.Lng == nil {
		return nil, invalid("latitude and longitude are required")
	}
	lat, lng := *opts.Lat, *opts.Lng
	if lat < -90 || lat > 90 {
		return nil, invalid("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, invalid("longitude must be between -180 and 180")
	}
	radius := utils.ClampRadius(opts.RadiusMeters)
	p := utils.ParseParams(opts.Page, opts.Limit)

	rows, err := s.store.Posts.FindNearby(ctx, lat, lng, radius, p.Skip, int64(p.Limit))
	if err != nil {
		return nil, err
	}
	total, err := s.store.Posts.CountNearby(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, len(rows))
	for i, r := range rows {
		posts[i] = r.Post
	}

	views, err := formatPosts(ctx, s.store, posts, viewer)
	if err != nil {
		return nil, err
	}
	for i := range views {
		km := rows[i].DistanceMeters / 1000
		views[i].DistanceKm = &km
	}

	return &FeedPage{
		Posts:      views,
		Pagination: utils.NewPagination(p.Page, p.Limit, total),
	}, nil
}

// Search matches the query against the text index, title and description
// substrings, and hashtag names.
func (s *FeedService) Search(ctx context.Context, viewer *primitive.ObjectID, q string, opts FeedOptions) (*FeedPage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("search query is required")
	}
	if len(q) > maxQueryLength {
		return nil, invalid("search query must be at most 100 characters")
	}

	tagged, err := s.store.Hashtags.PostIDsMatching(ctx, q)
	if err != nil {
		return nil, err
	}
	filter := store.PostFilter{Search: &store.SearchFilter{Query: q, TaggedIDs: tagged}}
	return s.page(ctx, viewer, filter, store.SortNewest, opts.Page, opts.Limit)
}

// ByCategory lists a category's posts, newest first. An unknown slug fails
// before any post query runs.
func (s *FeedService) ByCategory(ctx context.Context, viewer *primitive.ObjectID, slug string, opts FeedOptions) (*FeedPage, error) {
	cat, err := s.store.Categories.GetBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("category")
	}
	if err != nil {
		return nil, err
	}

	filter := store.PostFilter{Category: &cat.ID}
	return s.page(ctx, viewer, filter, store.SortNewest, opts.Page, opts.Limit)
}

// page runs the shared tail of every non-geo feed: fetch, full count,
// format, envelope.
func (s *FeedService) page(ctx context.Context, viewer *primitive.ObjectID, filter store.PostFilter, sort store.Sort, page, limit int) (*FeedPage, error) {
	p := utils.ParseParams(page, limit)

	posts, err := s.store.Posts.Find(ctx, filter, sort, p.Skip, int64(p.Limit))
	if err != nil {
		return nil, err
	}
	total, err := s.store.Posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	views, err := formatPosts(ctx, s.store, posts, viewer)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:      views,
		Pagination: utils.NewPagination(p.Page, p.Limit, total),
	}, nil
}
