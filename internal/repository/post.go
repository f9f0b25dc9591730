package repository

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetFeed(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Post, error)
	IncreaseLikes(ctx context.Context, id string, delta int) error
	IncreaseComments(ctx context.Context, id string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetFeed(
	ctx context.Context, authorIDs []string, offset, limit int,
) ([]entity.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var records []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id IN (?)", authorIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// IncreaseLikes moves the maintained likes counter by delta (+1 or -1). The
// guard on negative counters keeps the column consistent with reaction rows
// even if a toggle races with itself.
func (r *postRepository) IncreaseLikes(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=? AND likes + ? >= 0", id, delta).
		Update("likes", gorm.Expr("likes+?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) IncreaseComments(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("comments", gorm.Expr("comments+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
