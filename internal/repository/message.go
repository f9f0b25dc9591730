package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, data *entity.Message) error
	GetListByConversationID(ctx context.Context, conversationID string, offset, limit int) ([]entity.Message, error)
	GetLastByConversationID(ctx context.Context, conversationID string) (*entity.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string) error
	CountUnreadByConversation(ctx context.Context, conversationID, userID string) (int64, error)
	CountUnreadByUserID(ctx context.Context, userID string) (int64, error)
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, data *entity.Message) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *messageRepository) GetListByConversationID(
	ctx context.Context, conversationID string, offset, limit int,
) ([]entity.Message, error) {
	var records []entity.Message
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *messageRepository) GetLastByConversationID(
	ctx context.Context, conversationID string,
) (*entity.Message, error) {
	var record entity.Message
	err := xcontext.DB(ctx).
		Where("conversation_id=?", conversationID).
		Order("id DESC").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// MarkRead marks every message of the conversation not authored by the
// reader as read. Calling it again is a no-op.
func (r *messageRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("conversation_id=? AND sender_id <> ? AND is_read=?", conversationID, readerID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) CountUnreadByConversation(
	ctx context.Context, conversationID, userID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("conversation_id=? AND sender_id <> ? AND is_read=?", conversationID, userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *messageRepository) CountUnreadByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Joins("join conversation_members on conversation_members.conversation_id=messages.conversation_id").
		Where("conversation_members.user_id=? AND messages.sender_id <> ? AND messages.is_read=?",
			userID, userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
