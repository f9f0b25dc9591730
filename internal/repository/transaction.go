package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, data *entity.Transaction) error
	GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.Transaction, error)
	GetListByReference(ctx context.Context, referenceID string) ([]entity.Transaction, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.Transaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetListByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.Transaction, error) {
	var records []entity.Transaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) GetListByReference(
	ctx context.Context, referenceID string,
) ([]entity.Transaction, error) {
	var records []entity.Transaction
	err := xcontext.DB(ctx).
		Where("reference_id=?", referenceID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
