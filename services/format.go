package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
	"isoko/store"
)

// formatPosts assembles PostViews for a whole page at once: related ids are
// collected first, then each related collection is hit with a single $in
// lookup and joined in memory. A post with a vanished owner or category
// still renders, with a null sub-object.
func formatPosts(ctx context.Context, st *store.Store, posts []models.Post, viewer *primitive.ObjectID) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	ownerSet := make(map[primitive.ObjectID]struct{})
	catSet := make(map[primitive.ObjectID]struct{})
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		ownerSet[p.UserID] = struct{}{}
		if p.CategoryID != nil {
			catSet[*p.CategoryID] = struct{}{}
		}
	}

	owners, err := st.Users.ByIDs(ctx, keys(ownerSet))
	if err != nil {
		return nil, err
	}
	cats, err := st.Categories.ByIDs(ctx, keys(catSet))
	if err != nil {
		return nil, err
	}
	mediaByPost, err := st.Media.ByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	tagsByPost, err := st.Hashtags.NamesByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	liked := map[primitive.ObjectID]bool{}
	bookmarked := map[primitive.ObjectID]bool{}
	if viewer != nil {
		if liked, err = st.Likes.Set(ctx, *viewer, postIDs); err != nil {
			return nil, err
		}
		if bookmarked, err = st.Bookmarks.Set(ctx, *viewer, postIDs); err != nil {
			return nil, err
		}
	}

	for _, p := range posts {
		view := PostView{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Price:        p.Price,
			Currency:     p.Currency,
			Condition:    p.Condition,
			District:     p.District,
			Sector:       p.Sector,
			Images:       []string{},
			Hashtags:     []string{},
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			ShareCount:   p.ShareCount,
			ViewCount:    p.ViewCount,
			IsLiked:      liked[p.ID],
			IsBookmarked: bookmarked[p.ID],
			CreatedAt:    p.CreatedAt,
		}

		if p.Location.Valid() {
			view.Location = &LatLng{Lat: p.Location.Lat(), Lng: p.Location.Lng()}
		}
		if owner, ok := owners[p.UserID]; ok {
			view.User = owner.Summary()
		}
		if p.CategoryID != nil {
			if cat, ok := cats[*p.CategoryID]; ok {
				view.Category = cat.Summary()
			}
		}
		for _, m := range mediaByPost[p.ID] {
			view.Images = append(view.Images, m.MediaURL)
		}
		if tags, ok := tagsByPost[p.ID]; ok {
			view.Hashtags = tags
		}

		views = append(views, view)
	}
	return views, nil
}

func keys(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
