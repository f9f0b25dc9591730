package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PluginRepository interface {
	Create(ctx context.Context, data *entity.Plugin) error
	GetByID(ctx context.Context, id string) (*entity.Plugin, error)
	GetList(ctx context.Context, category string) ([]entity.Plugin, error)
	IncreaseDownloads(ctx context.Context, id string) error
	CreateInstall(ctx context.Context, data *entity.PluginInstall) error
	GetInstall(ctx context.Context, pluginID, userID string) (*entity.PluginInstall, error)
	GetInstallsByUserID(ctx context.Context, userID string) ([]entity.PluginInstall, error)
}

type pluginRepository struct{}

func NewPluginRepository() *pluginRepository {
	return &pluginRepository{}
}

func (r *pluginRepository) Create(ctx context.Context, data *entity.Plugin) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pluginRepository) GetByID(ctx context.Context, id string) (*entity.Plugin, error) {
	var record entity.Plugin
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *pluginRepository) GetList(ctx context.Context, category string) ([]entity.Plugin, error) {
	tx := xcontext.DB(ctx)
	if category != "" {
		tx = tx.Where("category=?", category)
	}

	var records []entity.Plugin
	if err := tx.Order("downloads DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *pluginRepository) IncreaseDownloads(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Plugin{}).
		Where("id=?", id).
		Update("downloads", gorm.Expr("downloads+1")).Error
}

func (r *pluginRepository) CreateInstall(ctx context.Context, data *entity.PluginInstall) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pluginRepository) GetInstall(
	ctx context.Context, pluginID, userID string,
) (*entity.PluginInstall, error) {
	var record entity.PluginInstall
	err := xcontext.DB(ctx).
		Where("plugin_id=? AND user_id=?", pluginID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *pluginRepository) GetInstallsByUserID(
	ctx context.Context, userID string,
) ([]entity.PluginInstall, error) {
	var records []entity.PluginInstall
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
