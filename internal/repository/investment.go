package repository

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type InvestmentRepository interface {
	Create(ctx context.Context, data *entity.Investment) error
	GetByID(ctx context.Context, id string) (*entity.Investment, error)
	GetListByInvestorID(ctx context.Context, investorID string) ([]entity.Investment, error)
	MarkWithdrawn(ctx context.Context, id string) error
}

type investmentRepository struct{}

func NewInvestmentRepository() *investmentRepository {
	return &investmentRepository{}
}

func (r *investmentRepository) Create(ctx context.Context, data *entity.Investment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *investmentRepository) GetByID(ctx context.Context, id string) (*entity.Investment, error) {
	var record entity.Investment
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *investmentRepository) GetListByInvestorID(
	ctx context.Context, investorID string,
) ([]entity.Investment, error) {
	var records []entity.Investment
	err := xcontext.DB(ctx).
		Where("investor_id=?", investorID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// MarkWithdrawn closes an active investment. The status guard makes a second
// withdrawal attempt fail with gorm.ErrRecordNotFound instead of paying out
// twice.
func (r *investmentRepository) MarkWithdrawn(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Investment{}).
		Where("id=? AND status=?", id, entity.InvestmentActive).
		Update("status", entity.InvestmentWithdrawn)

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
