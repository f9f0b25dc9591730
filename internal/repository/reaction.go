package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type ReactionRepository interface {
	Create(ctx context.Context, data *entity.Reaction) error
	Delete(ctx context.Context, userID, postID string, typ entity.ReactionType) error
	Get(ctx context.Context, userID, postID string, typ entity.ReactionType) (*entity.Reaction, error)
	GetByUserAndPosts(ctx context.Context, userID string, postIDs []string) ([]entity.Reaction, error)
}

type reactionRepository struct{}

func NewReactionRepository() *reactionRepository {
	return &reactionRepository{}
}

func (r *reactionRepository) Create(ctx context.Context, data *entity.Reaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *reactionRepository) Delete(
	ctx context.Context, userID, postID string, typ entity.ReactionType,
) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND post_id=? AND type=?", userID, postID, typ).
		Delete(&entity.Reaction{}).Error
}

func (r *reactionRepository) Get(
	ctx context.Context, userID, postID string, typ entity.ReactionType,
) (*entity.Reaction, error) {
	var record entity.Reaction
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id=? AND type=?", userID, postID, typ).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *reactionRepository) GetByUserAndPosts(
	ctx context.Context, userID string, postIDs []string,
) ([]entity.Reaction, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []entity.Reaction
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id IN (?)", userID, postIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
