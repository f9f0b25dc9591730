package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, data *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetList(ctx context.Context, category string) ([]entity.Game, error)
	IncreasePlayers(ctx context.Context, id string) error
}

type gameRepository struct{}

func NewGameRepository() *gameRepository {
	return &gameRepository{}
}

func (r *gameRepository) Create(ctx context.Context, data *entity.Game) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var record entity.Game
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *gameRepository) GetList(ctx context.Context, category string) ([]entity.Game, error) {
	tx := xcontext.DB(ctx)
	if category != "" {
		tx = tx.Where("category=?", category)
	}

	var records []entity.Game
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *gameRepository) IncreasePlayers(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Game{}).
		Where("id=?", id).
		Update("players", gorm.Expr("players+1")).Error
}
