package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/ws"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// messagePreviewLen bounds the message excerpt copied into the notification.
const messagePreviewLen = 100

type ConversationDomain interface {
	GetOrCreate(ctx context.Context, req *model.GetOrCreateConversationRequest) (*model.GetOrCreateConversationResponse, error)
	GetList(ctx context.Context, req *model.GetConversationsRequest) (*model.GetConversationsResponse, error)
	SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	MarkRead(ctx context.Context, req *model.MarkReadRequest) (*model.MarkReadResponse, error)
	GetUnreadCount(ctx context.Context, req *model.GetUnreadCountRequest) (*model.GetUnreadCountResponse, error)
}

type conversationDomain struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	notifier         *Notifier
	hub              *ws.Hub
}

func NewConversationDomain(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
	hub *ws.Hub,
) ConversationDomain {
	return &conversationDomain{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		hub:              hub,
	}
}

// GetOrCreate returns the conversation whose member set equals exactly the
// requester plus the given users, creating it if none exists. It never
// returns a superset conversation.
func (d *conversationDomain) GetOrCreate(
	ctx context.Context, req *model.GetOrCreateConversationRequest,
) (*model.GetOrCreateConversationResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	memberSet := map[string]struct{}{userID: {}}
	for _, id := range req.UserIDs {
		memberSet[id] = struct{}{}
	}

	if len(memberSet) < 2 {
		return nil, errorx.New(errorx.BadRequest, "A conversation needs at least two members")
	}

	memberIDs := make([]string, 0, len(memberSet))
	for id := range memberSet {
		memberIDs = append(memberIDs, id)
	}

	users, err := d.userRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	if len(users) != len(memberIDs) {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	existingIDs, err := d.conversationRepo.GetIDsByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation ids: %v", err)
		return nil, errorx.Unknown
	}

	for _, conversationID := range existingIDs {
		members, err := d.conversationRepo.GetMembers(ctx, conversationID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get conversation members: %v", err)
			return nil, errorx.Unknown
		}

		if !sameMemberSet(members, memberSet) {
			continue
		}

		conversation, err := d.conversationRepo.GetByID(ctx, conversationID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get the conversation: %v", err)
			return nil, errorx.Unknown
		}

		resp, err := d.convertConversation(ctx, conversation, userID)
		if err != nil {
			return nil, err
		}

		return &model.GetOrCreateConversationResponse{Conversation: *resp}, nil
	}

	conversation := &entity.Conversation{
		Base:          entity.Base{ID: uuid.NewString()},
		LastMessageAt: time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.conversationRepo.Create(ctx, conversation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the conversation: %v", err)
		return nil, errorx.Unknown
	}

	for _, id := range memberIDs {
		err := d.conversationRepo.CreateMember(ctx, &entity.ConversationMember{
			ConversationID: conversation.ID,
			UserID:         id,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the conversation member: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	resp, err := d.convertConversation(ctx, conversation, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetOrCreateConversationResponse{Conversation: *resp}, nil
}

func sameMemberSet(members []entity.ConversationMember, want map[string]struct{}) bool {
	if len(members) != len(want) {
		return false
	}

	for i := range members {
		if _, ok := want[members[i].UserID]; !ok {
			return false
		}
	}

	return true
}

func (d *conversationDomain) GetList(
	ctx context.Context, req *model.GetConversationsRequest,
) (*model.GetConversationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	conversations, err := d.conversationRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversations: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Conversation, 0, len(conversations))
	for i := range conversations {
		converted, err := d.convertConversation(ctx, &conversations[i], userID)
		if err != nil {
			return nil, err
		}

		resp = append(resp, *converted)
	}

	return &model.GetConversationsResponse{Conversations: resp}, nil
}

func (d *conversationDomain) convertConversation(
	ctx context.Context, conversation *entity.Conversation, userID string,
) (*model.Conversation, error) {
	members, err := d.conversationRepo.GetMembers(ctx, conversation.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation members: %v", err)
		return nil, errorx.Unknown
	}

	memberIDs := make([]string, 0, len(members))
	for i := range members {
		memberIDs = append(memberIDs, members[i].UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	shortUsers := make([]model.ShortUser, 0, len(users))
	for i := range users {
		shortUsers = append(shortUsers, model.ConvertShortUser(&users[i]))
	}

	var lastMessage *model.Message
	last, err := d.messageRepo.GetLastByConversationID(ctx, conversation.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the last message: %v", err)
		return nil, errorx.Unknown
	}
	if err == nil {
		converted := model.ConvertMessage(last)
		lastMessage = &converted
	}

	unread, err := d.messageRepo.CountUnreadByConversation(ctx, conversation.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.Conversation{
		ID:            conversation.ID,
		Members:       shortUsers,
		LastMessage:   lastMessage,
		LastMessageAt: conversation.LastMessageAt.Format(model.DefaultTimeLayout),
		UnreadCount:   unread,
	}, nil
}

func (d *conversationDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	userID := xcontext.RequestUserID(ctx)
	isMember, err := d.conversationRepo.IsMember(ctx, req.ConversationID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check the membership: %v", err)
		return nil, errorx.Unknown
	}

	if !isMember {
		return nil, errorx.New(errorx.PermissionDenied, "Not a member of this conversation")
	}

	message := &entity.Message{
		ID:             xcontext.SnowFlake(ctx).Generate().Int64(),
		ConversationID: req.ConversationID,
		SenderID:       userID,
		Content:        req.Content,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the message: %v", err)
		return nil, errorx.Unknown
	}

	err = d.conversationRepo.UpdateLastMessageAt(ctx, req.ConversationID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot bump the conversation: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	converted := model.ConvertMessage(message)
	members, err := d.conversationRepo.GetMembers(ctx, req.ConversationID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get members for fan-out: %v", err)
		return &model.SendMessageResponse{Message: converted}, nil
	}

	preview := previewOf(req.Content, messagePreviewLen)
	for i := range members {
		if members[i].UserID == userID {
			continue
		}

		if d.hub != nil {
			event := map[string]any{"type": "message", "data": converted}
			if err := d.hub.SendToUser(members[i].UserID, event); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot push the message: %v", err)
			}
		}

		d.notifier.Push(ctx, &entity.Notification{
			UserID:        members[i].UserID,
			ActorID:       userID,
			Type:          entity.NotificationMessage,
			ReferenceID:   req.ConversationID,
			ReferenceType: "conversation",
			Message:       preview,
		})
	}

	return &model.SendMessageResponse{Message: converted}, nil
}

func (d *conversationDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	isMember, err := d.conversationRepo.IsMember(ctx, req.ConversationID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check the membership: %v", err)
		return nil, errorx.Unknown
	}

	if !isMember {
		return nil, errorx.New(errorx.PermissionDenied, "Not a member of this conversation")
	}

	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	messages, err := d.messageRepo.GetListByConversationID(ctx, req.ConversationID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Message, 0, len(messages))
	for i := range messages {
		resp = append(resp, model.ConvertMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: resp}, nil
}

// MarkRead marks every message of the conversation not sent by the requester
// as read. Re-marking is a no-op.
func (d *conversationDomain) MarkRead(
	ctx context.Context, req *model.MarkReadRequest,
) (*model.MarkReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	isMember, err := d.conversationRepo.IsMember(ctx, req.ConversationID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check the membership: %v", err)
		return nil, errorx.Unknown
	}

	if !isMember {
		return nil, errorx.New(errorx.PermissionDenied, "Not a member of this conversation")
	}

	if err := d.messageRepo.MarkRead(ctx, req.ConversationID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark messages as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkReadResponse{}, nil
}

func (d *conversationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadCountRequest,
) (*model.GetUnreadCountResponse, error) {
	count, err := d.messageRepo.CountUnreadByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadCountResponse{Count: count}, nil
}
