package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isoko/models"
	"isoko/store"
	"isoko/utils"
)

const maxCommentLength = 1000

// InteractionService handles like/bookmark toggles, comments and shares.
type InteractionService struct {
	store *store.Store
}

func NewInteractionService(st *store.Store) *InteractionService {
	return &InteractionService{store: st}
}

type LikeResult struct {
	Liked bool `json:"liked"`
}

type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

type ShareResult struct {
	Shared bool `json:"shared"`
}

// activePost rejects missing and soft-deleted posts with the same error, so
// a deleted post is indistinguishable from one that never existed.
func (s *InteractionService) activePost(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	post, err := s.store.Posts.GetByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("post")
	}
	if err != nil {
		return nil, err
	}
	if post.IsDeleted {
		return nil, notFound("post")
	}
	return post, nil
}

// ToggleLike flips the viewer's like on a post. The counter only moves with
// a confirmed row write: the delete leg decrements only when a row was
// actually removed, and the insert leg treats a duplicate-key race as
// already-liked without touching the counter.
func (s *InteractionService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*LikeResult, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.store.Likes.Delete(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.store.Posts.IncLikeCount(ctx, postID, -1); err != nil {
			return nil, err
		}
		return &LikeResult{Liked: false}, nil
	}

	err = s.store.Likes.Insert(ctx, userID, postID)
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent like won; its insert already counted.
		return &LikeResult{Liked: true}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.Posts.IncLikeCount(ctx, postID, 1); err != nil {
		return nil, err
	}
	return &LikeResult{Liked: true}, nil
}

// ToggleBookmark mirrors ToggleLike without a denormalized counter.
func (s *InteractionService) ToggleBookmark(ctx context.Context, postID, userID primitive.ObjectID) (*BookmarkResult, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.store.Bookmarks.Delete(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		return &BookmarkResult{Bookmarked: false}, nil
	}

	err = s.store.Bookmarks.Insert(ctx, userID, postID)
	if errors.Is(err, store.ErrDuplicate) {
		return &BookmarkResult{Bookmarked: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &BookmarkResult{Bookmarked: true}, nil
}

// AddComment validates the content before writing anything, then creates the
// comment and bumps the post's comment_count.
func (s *InteractionService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, content string) (*CommentView, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment content is required")
	}
	if len(content) > maxCommentLength {
		return nil, invalid("comment must be at most 1000 characters")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.store.Comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.store.Posts.IncCommentCount(ctx, postID, 1); err != nil {
		return nil, err
	}

	view := CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	author, err := s.store.Users.GetByID(ctx, userID)
	if err == nil {
		view.User = author.Summary()
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return &view, nil
}

// Comments lists a post's non-deleted comments, newest first, with author
// summaries batched in one lookup.
func (s *InteractionService) Comments(ctx context.Context, postID primitive.ObjectID, page, limit int) (*CommentPage, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}

	p := utils.ParseParams(page, limit)
	comments, err := s.store.Comments.ByPost(ctx, postID, p.Skip, int64(p.Limit))
	if err != nil {
		return nil, err
	}
	total, err := s.store.Comments.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorSet := make(map[primitive.ObjectID]struct{})
	for _, c := range comments {
		authorSet[c.UserID] = struct{}{}
	}
	authors, err := s.store.Users.ByIDs(ctx, keys(authorSet))
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		view := CommentView{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
		if author, ok := authors[c.UserID]; ok {
			view.User = author.Summary()
		}
		views = append(views, view)
	}

	return &CommentPage{
		Comments:   views,
		Pagination: utils.NewPagination(p.Page, p.Limit, total),
	}, nil
}

// Share bumps share_count. There is no identity or idempotency check;
// repeated shares keep counting.
func (s *InteractionService) Share(ctx context.Context, postID primitive.ObjectID) (*ShareResult, error) {
	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.store.Posts.IncShareCount(ctx, postID); err != nil {
		return nil, err
	}
	return &ShareResult{Shared: true}, nil
}
