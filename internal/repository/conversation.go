package repository

import (
	"context"
	"time"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type ConversationRepository interface {
	Create(ctx context.Context, data *entity.Conversation) error
	CreateMember(ctx context.Context, data *entity.ConversationMember) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	GetIDsByUserID(ctx context.Context, userID string) ([]string, error)
	GetMembers(ctx context.Context, conversationID string) ([]entity.ConversationMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Conversation, error)
	IsMember(ctx context.Context, conversationID, userID string) (bool, error)
	UpdateLastMessageAt(ctx context.Context, conversationID string, at time.Time) error
}

type conversationRepository struct{}

func NewConversationRepository() *conversationRepository {
	return &conversationRepository{}
}

func (r *conversationRepository) Create(ctx context.Context, data *entity.Conversation) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *conversationRepository) CreateMember(ctx context.Context, data *entity.ConversationMember) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var record entity.Conversation
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *conversationRepository) GetIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.ConversationMember{}).
		Where("user_id=?", userID).
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *conversationRepository) GetMembers(
	ctx context.Context, conversationID string,
) ([]entity.ConversationMember, error) {
	var records []entity.ConversationMember
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *conversationRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Conversation, error) {
	var records []entity.Conversation
	err := xcontext.DB(ctx).
		Model(&entity.Conversation{}).
		Joins("join conversation_members on conversation_members.conversation_id=conversations.id").
		Where("conversation_members.user_id=?", userID).
		Order("conversations.last_message_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *conversationRepository) IsMember(
	ctx context.Context, conversationID, userID string,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ConversationMember{}).
		Where("conversation_id=? AND user_id=?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *conversationRepository) UpdateLastMessageAt(
	ctx context.Context, conversationID string, at time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Conversation{}).
		Where("id=?", conversationID).
		Update("last_message_at", at).Error
}
