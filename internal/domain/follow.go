package domain

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(ctx context.Context, req *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(ctx context.Context, req *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   *Notifier
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) FollowDomain {
	return &followDomain{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (d *followDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if followerID == req.UserID {
		return nil, errorx.New(errorx.SelfTarget, "Not allow following yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	// Following twice is a no-op, not an error.
	if _, err := d.followRepo.Get(ctx, followerID, req.UserID); err == nil {
		return &model.FollowResponse{}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the follow: %v", err)
		return nil, errorx.Unknown
	}

	err := d.followRepo.Create(ctx, &entity.Follow{
		FollowerID:  followerID,
		FollowingID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the follow: %v", err)
		return nil, errorx.Unknown
	}

	d.notifier.Push(ctx, &entity.Notification{
		UserID:        req.UserID,
		ActorID:       followerID,
		Type:          entity.NotificationFollow,
		ReferenceID:   followerID,
		ReferenceType: "user",
	})

	return &model.FollowResponse{}, nil
}

func (d *followDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	err := d.followRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	users, err := d.followRepo.GetFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	followers := make([]model.ShortUser, 0, len(users))
	for i := range users {
		followers = append(followers, model.ConvertShortUser(&users[i]))
	}

	return &model.GetFollowersResponse{Followers: followers}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	users, err := d.followRepo.GetFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	following := make([]model.ShortUser, 0, len(users))
	for i := range users {
		following = append(following, model.ConvertShortUser(&users[i]))
	}

	return &model.GetFollowingResponse{Following: following}, nil
}
