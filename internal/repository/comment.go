package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetListByPostID(ctx context.Context, postID string, offset, limit int) ([]entity.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetListByPostID(
	ctx context.Context, postID string, offset, limit int,
) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
