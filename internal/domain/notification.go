package domain

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetList(ctx context.Context, req *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, req *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(ctx context.Context, req *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
	GetUnreadCount(ctx context.Context, req *model.GetUnreadNotificationCountRequest) (*model.GetUnreadNotificationCountResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	actorSet := map[string]struct{}{}
	for i := range notifications {
		actorSet[notifications[i].ActorID] = struct{}{}
	}

	actorIDs := make([]string, 0, len(actorSet))
	for id := range actorSet {
		actorIDs = append(actorIDs, id)
	}

	actors, err := d.userRepo.GetByIDs(ctx, actorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get actors: %v", err)
		return nil, errorx.Unknown
	}

	actorMap := make(map[string]*entity.User, len(actors))
	for i := range actors {
		actorMap[actors[i].ID] = &actors[i]
	}

	resp := make([]model.Notification, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		resp = append(resp, model.ConvertNotification(n, actorMap[n.ActorID]))
	}

	return &model.GetNotificationsResponse{Notifications: resp}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.notificationRepo.MarkRead(ctx, req.NotificationID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark the notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	if err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}

func (d *notificationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadNotificationCountRequest,
) (*model.GetUnreadNotificationCountResponse, error) {
	count, err := d.notificationRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadNotificationCountResponse{Count: count}, nil
}
