package domain

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/enum"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/redis"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	UpdateStatus(ctx context.Context, req *model.UpdateStatusRequest) (*model.UpdateStatusResponse, error)
	Search(ctx context.Context, req *model.SearchUsersRequest) (*model.SearchUsersResponse, error)
	GetTop(ctx context.Context, req *model.GetTopUsersRequest) (*model.GetTopUsersResponse, error)
}

// topUsersLimit is the number of users returned when no limit is given.
const topUsersLimit = 10

type userDomain struct {
	userRepo repository.UserRepository
	presence redis.PresenceStore
}

// NewUserDomain accepts a nil presence store; status then falls back to the
// persisted column only.
func NewUserDomain(userRepo repository.UserRepository, presence redis.PresenceStore) UserDomain {
	return &userDomain{userRepo: userRepo, presence: presence}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if d.presence != nil {
		status, err := d.presence.Get(ctx, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get the presence: %v", err)
		} else {
			user.Status = entity.UserStatusType(status)
		}
	}

	resp := model.GetUserResponse(model.ConvertUser(user, false))
	return &resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Name != "" {
		existing, err := d.userRepo.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}

		if err == nil && existing.ID != userID {
			return nil, errorx.New(errorx.AlreadyExists, "The name has already been taken")
		}
	}

	err := d.userRepo.UpdateByID(ctx, userID, &entity.User{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateStatusRequest,
) (*model.UpdateStatusResponse, error) {
	status, err := enum.ToEnum[entity.UserStatusType](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the status: %v", err)
		return nil, errorx.Unknown
	}

	if d.presence != nil {
		if err := d.presence.Set(ctx, userID, string(status)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update the presence: %v", err)
		}
	}

	return &model.UpdateStatusResponse{}, nil
}

func (d *userDomain) Search(
	ctx context.Context, req *model.SearchUsersRequest,
) (*model.SearchUsersResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty query")
	}

	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	users, err := d.userRepo.Search(ctx, req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
		return nil, errorx.Unknown
	}

	d.applyPresence(ctx, users)

	shortUsers := make([]model.ShortUser, 0, len(users))
	for i := range users {
		shortUsers = append(shortUsers, model.ConvertShortUser(&users[i]))
	}

	return &model.SearchUsersResponse{Users: shortUsers}, nil
}

// GetTop returns the highest-rated users, the pool the invest page offers.
func (d *userDomain) GetTop(
	ctx context.Context, req *model.GetTopUsersRequest,
) (*model.GetTopUsersResponse, error) {
	if req.Limit == 0 {
		req.Limit = topUsersLimit
	}

	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	users, err := d.userRepo.GetTopByRating(ctx, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top users: %v", err)
		return nil, errorx.Unknown
	}

	d.applyPresence(ctx, users)

	resp := make([]model.User, 0, len(users))
	for i := range users {
		resp = append(resp, model.ConvertUser(&users[i], false))
	}

	return &model.GetTopUsersResponse{Users: resp}, nil
}

// applyPresence overlays the TTL-bound live status onto users loaded from the
// database. Without a presence store the persisted column stands.
func (d *userDomain) applyPresence(ctx context.Context, users []entity.User) {
	if d.presence == nil || len(users) == 0 {
		return
	}

	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}

	statuses, err := d.presence.GetMulti(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get presences: %v", err)
		return
	}

	for i := range users {
		if status, ok := statuses[users[i].ID]; ok {
			users[i].Status = entity.UserStatusType(status)
		}
	}
}
