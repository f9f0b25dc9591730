package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type GiftRepository interface {
	Create(ctx context.Context, data *entity.Gift) error
	GetListByReceiverID(ctx context.Context, receiverID string) ([]entity.Gift, error)
}

type giftRepository struct{}

func NewGiftRepository() *giftRepository {
	return &giftRepository{}
}

func (r *giftRepository) Create(ctx context.Context, data *entity.Gift) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *giftRepository) GetListByReceiverID(
	ctx context.Context, receiverID string,
) ([]entity.Gift, error) {
	var records []entity.Gift
	err := xcontext.DB(ctx).
		Where("receiver_id=?", receiverID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
