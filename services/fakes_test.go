package services

// In-memory store fakes for service tests. fakePosts mirrors the MongoDB
// filter semantics from store/mongodb: active-only baseline, the home-feed
// owner/trending union, and substring search.

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
	"isoko/store"
	"isoko/utils"
)

type pairKey struct {
	user primitive.ObjectID
	post primitive.ObjectID
}

type fixture struct {
	posts      *fakePosts
	users      *fakeUsers
	categories *fakeCategories
	media      *fakeMedia
	hashtags   *fakeHashtags
	likes      *fakePairs
	bookmarks  *fakePairs
	comments   *fakeComments
	follows    *fakeFollows
}

func newFixture() (*fixture, *store.Store) {
	f := &fixture{
		posts:      &fakePosts{byID: map[primitive.ObjectID]*models.Post{}},
		users:      &fakeUsers{byID: map[primitive.ObjectID]models.User{}},
		categories: &fakeCategories{byID: map[primitive.ObjectID]models.Category{}},
		media:      &fakeMedia{},
		hashtags:   &fakeHashtags{},
		likes:      &fakePairs{rows: map[pairKey]bool{}},
		bookmarks:  &fakePairs{rows: map[pairKey]bool{}},
		comments:   &fakeComments{},
		follows:    &fakeFollows{rows: map[pairKey]bool{}},
	}
	st := &store.Store{
		Posts:      f.posts,
		Users:      f.users,
		Categories: f.categories,
		Media:      f.media,
		Hashtags:   f.hashtags,
		Likes:      f.likes,
		Bookmarks:  f.bookmarks,
		Comments:   f.comments,
		Follows:    f.follows,
	}
	return f, st
}

func (f *fixture) addUser(name string) models.User {
	u := models.User{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       strings.ToLower(name) + "@example.com",
		DisplayName: name,
	}
	f.users.byID[u.ID] = u
	return u
}

func (f *fixture) addCategory(name, slug string) models.Category {
	c := models.Category{ID: primitive.NewObjectID(), Name: name, Slug: slug}
	f.categories.byID[c.ID] = c
	return c
}

func (f *fixture) addPost(p models.Post) *models.Post {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	stored := p
	f.posts.byID[stored.ID] = &stored
	f.posts.order = append(f.posts.order, stored.ID)
	return f.posts.byID[stored.ID]
}

type fakePosts struct {
	byID       map[primitive.ObjectID]*models.Post
	order      []primitive.ObjectID
	queryCount int
}

func (f *fakePosts) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePosts) matchAll(filter store.PostFilter) []models.Post {
	var result []models.Post
	for _, id := range f.order {
		if p := f.byID[id]; matchesFilter(p, filter) {
			result = append(result, *p)
		}
	}
	return result
}

func matchesFilter(p *models.Post, f store.PostFilter) bool {
	if p.IsDeleted || !p.IsAvailable {
		return false
	}
	if f.Category != nil && (p.CategoryID == nil || *p.CategoryID != *f.Category) {
		return false
	}
	if !f.CreatedSince.IsZero() && p.CreatedAt.Before(f.CreatedSince) {
		return false
	}
	if f.Feed != nil {
		trending := !p.CreatedAt.Before(f.Feed.TrendingSince) && p.LikeCount+p.CommentCount > 0
		owned := false
		for _, o := range f.Feed.Owners {
			if o == p.UserID {
				owned = true
			}
		}
		if !owned && !trending {
			return false
		}
	}
	if f.Search != nil {
		q := strings.ToLower(f.Search.Query)
		hit := strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
		for _, id := range f.Search.TaggedIDs {
			if id == p.ID {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func sortPosts(posts []models.Post, s store.Sort) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if s == store.SortPopular {
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
			if a.CommentCount != b.CommentCount {
				return a.CommentCount > b.CommentCount
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func pageOf(posts []models.Post, skip, limit int64) []models.Post {
	if skip >= int64(len(posts)) {
		return nil
	}
	posts = posts[skip:]
	if limit < int64(len(posts)) {
		posts = posts[:limit]
	}
	return posts
}

func (f *fakePosts) Find(_ context.Context, filter store.PostFilter, s store.Sort, skip, limit int64) ([]models.Post, error) {
	f.queryCount++
	matched := f.matchAll(filter)
	sortPosts(matched, s)
	return pageOf(matched, skip, limit), nil
}

func (f *fakePosts) Count(_ context.Context, filter store.PostFilter) (int64, error) {
	f.queryCount++
	return int64(len(f.matchAll(filter))), nil
}

func (f *fakePosts) FindNearby(_ context.Context, lat, lng float64, radiusMeters int, skip, limit int64) ([]store.NearbyPost, error) {
	f.queryCount++
	var result []store.NearbyPost
	for _, id := range f.order {
		p := f.byID[id]
		if p.IsDeleted || !p.IsAvailable || !p.Location.Valid() {
			continue
		}
		meters := utils.HaversineKm(lat, lng, p.Location.Lat(), p.Location.Lng()) * 1000
		if meters > float64(radiusMeters) {
			continue
		}
		result = append(result, store.NearbyPost{Post: *p, DistanceMeters: meters})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceMeters < result[j].DistanceMeters
	})
	if skip >= int64(len(result)) {
		return nil, nil
	}
	result = result[skip:]
	if limit < int64(len(result)) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakePosts) CountNearby(_ context.Context, lat, lng float64, radiusMeters int) (int64, error) {
	rows, _ := f.FindNearby(context.Background(), lat, lng, radiusMeters, 0, int64(len(f.order)))
	f.queryCount--
	return int64(len(rows)), nil
}

func (f *fakePosts) inc(id primitive.ObjectID, apply func(*models.Post)) error {
	p, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	apply(p)
	return nil
}

func (f *fakePosts) IncLikeCount(_ context.Context, id primitive.ObjectID, delta int) error {
	return f.inc(id, func(p *models.Post) { p.LikeCount += int64(delta) })
}

func (f *fakePosts) IncCommentCount(_ context.Context, id primitive.ObjectID, delta int) error {
	return f.inc(id, func(p *models.Post) { p.CommentCount += int64(delta) })
}

func (f *fakePosts) IncShareCount(_ context.Context, id primitive.ObjectID) error {
	return f.inc(id, func(p *models.Post) { p.ShareCount++ })
}

type fakeUsers struct {
	byID map[primitive.ObjectID]models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == strings.ToLower(u.Email) {
			return &store.DuplicateError{Field: "email"}
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	result := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

type fakeCategories struct {
	byID map[primitive.ObjectID]models.Category
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.byID {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategories) List(_ context.Context) ([]models.Category, error) {
	var result []models.Category
	for _, c := range f.byID {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (f *fakeCategories) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	result := map[primitive.ObjectID]models.Category{}
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

type fakeMedia struct {
	rows []models.PostMedia
}

func (f *fakeMedia) ByPostIDs(_ context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.PostMedia, error) {
	result := map[primitive.ObjectID][]models.PostMedia{}
	for _, id := range postIDs {
		for _, m := range f.rows {
			if m.PostID == id {
				result[id] = append(result[id], m)
			}
		}
		sort.SliceStable(result[id], func(i, j int) bool {
			return result[id][i].SortOrder < result[id][j].SortOrder
		})
	}
	return result, nil
}

type fakeHashtags struct {
	tags  []models.Hashtag
	joins []models.PostHashtag
}

func (f *fakeHashtags) NamesByPostIDs(_ context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID][]string, error) {
	names := map[primitive.ObjectID]string{}
	for _, t := range f.tags {
		names[t.ID] = t.Name
	}
	result := map[primitive.ObjectID][]string{}
	for _, id := range postIDs {
		for _, j := range f.joins {
			if j.PostID == id {
				result[id] = append(result[id], names[j.HashtagID])
			}
		}
	}
	return result, nil
}

func (f *fakeHashtags) PostIDsMatching(_ context.Context, q string) ([]primitive.ObjectID, error) {
	matched := map[primitive.ObjectID]bool{}
	for _, t := range f.tags {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(q)) {
			matched[t.ID] = true
		}
	}
	var result []primitive.ObjectID
	for _, j := range f.joins {
		if matched[j.HashtagID] {
			result = append(result, j.PostID)
		}
	}
	return result, nil
}

type fakePairs struct {
	rows map[pairKey]bool
}

func (f *fakePairs) Set(_ context.Context, userID primitive.ObjectID, postIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	result := map[primitive.ObjectID]bool{}
	for _, id := range postIDs {
		if f.rows[pairKey{user: userID, post: id}] {
			result[id] = true
		}
	}
	return result, nil
}

func (f *fakePairs) Insert(_ context.Context, userID, postID primitive.ObjectID) error {
	k := pairKey{user: userID, post: postID}
	if f.rows[k] {
		return &store.DuplicateError{Field: "user_id,post_id"}
	}
	f.rows[k] = true
	return nil
}

func (f *fakePairs) Delete(_ context.Context, userID, postID primitive.ObjectID) (bool, error) {
	k := pairKey{user: userID, post: postID}
	if !f.rows[k] {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}

func (f *fakePairs) count() int {
	return len(f.rows)
}

type fakeComments struct {
	rows []models.Comment
}

func (f *fakeComments) Insert(_ context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeComments) ByPost(_ context.Context, postID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	var result []models.Comment
	for _, c := range f.rows {
		if c.PostID == postID && !c.IsDeleted {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if skip >= int64(len(result)) {
		return nil, nil
	}
	result = result[skip:]
	if limit < int64(len(result)) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeComments) CountByPost(_ context.Context, postID primitive.ObjectID) (int64, error) {
	var n int64
	for _, c := range f.rows {
		if c.PostID == postID && !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

type fakeFollows struct {
	rows map[pairKey]bool
}

func (f *fakeFollows) FollowingIDs(_ context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var result []primitive.ObjectID
	for k := range f.rows {
		if k.user == followerID {
			result = append(result, k.post)
		}
	}
	return result, nil
}

func (f *fakeFollows) Insert(_ context.Context, followerID, followingID primitive.ObjectID) error {
	k := pairKey{user: followerID, post: followingID}
	if f.rows[k] {
		return &store.DuplicateError{Field: "follower_id,following_id"}
	}
	f.rows[k] = true
	return nil
}

func (f *fakeFollows) Delete(_ context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	k := pairKey{user: followerID, post: followingID}
	if !f.rows[k] {
		return false, nil
	}
	delete(f.rows, k)
	return true, nil
}
