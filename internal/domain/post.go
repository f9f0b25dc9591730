package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// commentPreviewLen bounds the comment excerpt copied into the notification.
const commentPreviewLen = 100

type PostDomain interface {
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error)
	GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
	ToggleLike(ctx context.Context, req *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error)
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
}

type postDomain struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	followRepo   repository.FollowRepository
	userRepo     repository.UserRepository
	notifier     *Notifier
}

func NewPostDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) PostDomain {
	return &postDomain{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		followRepo:   followRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: xcontext.RequestUserID(ctx),
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{ID: post.ID}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the author: %v", err)
		return nil, errorx.Unknown
	}

	liked := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		_, err := d.reactionRepo.Get(ctx, userID, post.ID, entity.ReactionLike)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the reaction: %v", err)
			return nil, errorx.Unknown
		}
		liked = err == nil
	}

	resp := model.GetPostResponse(model.ConvertPost(post, author, liked))
	return &resp, nil
}

// GetFeed returns the posts of the users the requester follows plus their
// own, newest first.
func (d *postDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	followingIDs, err := d.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following ids: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := append(followingIDs, userID)
	posts, err := d.postRepo.GetFeed(ctx, authorIDs, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the feed: %v", err)
		return nil, errorx.Unknown
	}

	postIDs := make([]string, 0, len(posts))
	authorSet := map[string]struct{}{}
	for i := range posts {
		postIDs = append(postIDs, posts[i].ID)
		authorSet[posts[i].AuthorID] = struct{}{}
	}

	authors, err := d.getUserMap(ctx, authorSet)
	if err != nil {
		return nil, err
	}

	reactions, err := d.reactionRepo.GetByUserAndPosts(ctx, userID, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reactions: %v", err)
		return nil, errorx.Unknown
	}

	likedSet := map[string]struct{}{}
	for i := range reactions {
		likedSet[reactions[i].PostID] = struct{}{}
	}

	feed := make([]model.Post, 0, len(posts))
	for i := range posts {
		author := authors[posts[i].AuthorID]
		_, liked := likedSet[posts[i].ID]
		feed = append(feed, model.ConvertPost(&posts[i], author, liked))
	}

	return &model.GetFeedResponse{Posts: feed}, nil
}

// ToggleLike creates the reaction if it does not exist and removes it if it
// does. The post counter moves by exactly one in the same transaction as the
// reaction row.
func (d *postDomain) ToggleLike(
	ctx context.Context, req *model.ToggleLikeRequest,
) (*model.ToggleLikeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.reactionRepo.Get(ctx, userID, post.ID, entity.ReactionLike)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the reaction: %v", err)
		return nil, errorx.Unknown
	}
	liked := err == nil

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if liked {
		if err := d.reactionRepo.Delete(ctx, userID, post.ID, entity.ReactionLike); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete the reaction: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.postRepo.IncreaseLikes(ctx, post.ID, -1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease likes: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		err := d.reactionRepo.Create(ctx, &entity.Reaction{
			UserID: userID,
			PostID: post.ID,
			Type:   entity.ReactionLike,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the reaction: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.postRepo.IncreaseLikes(ctx, post.ID, 1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase likes: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	likes := post.Likes
	if liked {
		likes--
	} else {
		likes++
		if post.AuthorID != userID {
			d.notifier.Push(ctx, &entity.Notification{
				UserID:        post.AuthorID,
				ActorID:       userID,
				Type:          entity.NotificationLike,
				ReferenceID:   post.ID,
				ReferenceType: "post",
			})
		}
	}

	return &model.ToggleLikeResponse{Liked: !liked, Likes: likes}, nil
}

func (d *postDomain) CreateComment(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	userID := xcontext.RequestUserID(ctx)
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the post: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   post.ID,
		AuthorID: userID,
		Content:  req.Content,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseComments(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase comments: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	if post.AuthorID != userID {
		preview := previewOf(req.Content, commentPreviewLen)
		d.notifier.Push(ctx, &entity.Notification{
			UserID:        post.AuthorID,
			ActorID:       userID,
			Type:          entity.NotificationComment,
			ReferenceID:   post.ID,
			ReferenceType: "post",
			Message:       preview,
		})
	}

	return &model.CreateCommentResponse{ID: comment.ID}, nil
}

func (d *postDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, req.PostID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := map[string]struct{}{}
	for i := range comments {
		authorSet[comments[i].AuthorID] = struct{}{}
	}

	authors, err := d.getUserMap(ctx, authorSet)
	if err != nil {
		return nil, err
	}

	resp := make([]model.Comment, 0, len(comments))
	for i := range comments {
		resp = append(resp, model.ConvertComment(&comments[i], authors[comments[i].AuthorID]))
	}

	return &model.GetCommentsResponse{Comments: resp}, nil
}

func (d *postDomain) getUserMap(
	ctx context.Context, idSet map[string]struct{},
) (map[string]*entity.User, error) {
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := make(map[string]*entity.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	return userMap, nil
}
