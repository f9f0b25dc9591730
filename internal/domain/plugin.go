package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PluginDomain interface {
	GetList(ctx context.Context, req *model.GetPluginsRequest) (*model.GetPluginsResponse, error)
	Get(ctx context.Context, req *model.GetPluginRequest) (*model.GetPluginResponse, error)
	Install(ctx context.Context, req *model.InstallPluginRequest) (*model.InstallPluginResponse, error)
	GetInstalled(ctx context.Context, req *model.GetInstalledPluginsRequest) (*model.GetInstalledPluginsResponse, error)
}

type pluginDomain struct {
	pluginRepo      repository.PluginRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

func NewPluginDomain(
	pluginRepo repository.PluginRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) PluginDomain {
	return &pluginDomain{
		pluginRepo:      pluginRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

func (d *pluginDomain) GetList(
	ctx context.Context, req *model.GetPluginsRequest,
) (*model.GetPluginsResponse, error) {
	plugins, err := d.pluginRepo.GetList(ctx, req.Category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get plugins: %v", err)
		return nil, errorx.Unknown
	}

	installedSet := map[string]struct{}{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		installs, err := d.pluginRepo.GetInstallsByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get installs: %v", err)
			return nil, errorx.Unknown
		}

		for i := range installs {
			installedSet[installs[i].PluginID] = struct{}{}
		}
	}

	resp := make([]model.Plugin, 0, len(plugins))
	for i := range plugins {
		_, installed := installedSet[plugins[i].ID]
		resp = append(resp, model.ConvertPlugin(&plugins[i], installed))
	}

	return &model.GetPluginsResponse{Plugins: resp}, nil
}

func (d *pluginDomain) Get(
	ctx context.Context, req *model.GetPluginRequest,
) (*model.GetPluginResponse, error) {
	plugin, err := d.pluginRepo.GetByID(ctx, req.PluginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found plugin")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the plugin: %v", err)
		return nil, errorx.Unknown
	}

	installed := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		_, err := d.pluginRepo.GetInstall(ctx, plugin.ID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the install: %v", err)
			return nil, errorx.Unknown
		}
		installed = err == nil
	}

	resp := model.GetPluginResponse(model.ConvertPlugin(plugin, installed))
	return &resp, nil
}

// Install records the install and bumps the download counter. Paid plugins
// additionally move the price from the buyer to the author with a ledger line
// on each side, all in one transaction.
func (d *pluginDomain) Install(
	ctx context.Context, req *model.InstallPluginRequest,
) (*model.InstallPluginResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	plugin, err := d.pluginRepo.GetByID(ctx, req.PluginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found plugin")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the plugin: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.pluginRepo.GetInstall(ctx, plugin.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already installed this plugin")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the install: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if plugin.Price > 0 {
		if plugin.AuthorID.Valid && plugin.AuthorID.String == userID {
			return nil, errorx.New(errorx.SelfTarget, "Not allow buying your own plugin")
		}

		if err := d.userRepo.DecreaseCoins(ctx, userID, plugin.Price); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InsufficientFunds, "Insufficient coins")
			}

			xcontext.Logger(ctx).Errorf("Cannot debit the buyer: %v", err)
			return nil, errorx.Unknown
		}

		err := d.transactionRepo.Create(ctx, &entity.Transaction{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			Type:          entity.TransactionPluginPurchase,
			Amount:        -plugin.Price,
			ReferenceID:   plugin.ID,
			ReferenceType: "plugin",
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
			return nil, errorx.Unknown
		}

		if plugin.AuthorID.Valid {
			if err := d.userRepo.IncreaseCoins(ctx, plugin.AuthorID.String, plugin.Price); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot credit the author: %v", err)
				return nil, errorx.Unknown
			}

			err := d.transactionRepo.Create(ctx, &entity.Transaction{
				Base:          entity.Base{ID: uuid.NewString()},
				UserID:        plugin.AuthorID.String,
				Type:          entity.TransactionPluginIncome,
				Amount:        plugin.Price,
				ReferenceID:   plugin.ID,
				ReferenceType: "plugin",
			})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
				return nil, errorx.Unknown
			}
		}
	}

	err = d.pluginRepo.CreateInstall(ctx, &entity.PluginInstall{
		PluginID: plugin.ID,
		UserID:   userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the install: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pluginRepo.IncreaseDownloads(ctx, plugin.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase downloads: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.InstallPluginResponse{}, nil
}

func (d *pluginDomain) GetInstalled(
	ctx context.Context, req *model.GetInstalledPluginsRequest,
) (*model.GetInstalledPluginsResponse, error) {
	installs, err := d.pluginRepo.GetInstallsByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get installs: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Plugin, 0, len(installs))
	for i := range installs {
		plugin, err := d.pluginRepo.GetByID(ctx, installs[i].PluginID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get the plugin: %v", err)
			return nil, errorx.Unknown
		}

		resp = append(resp, model.ConvertPlugin(plugin, true))
	}

	return &model.GetInstalledPluginsResponse{Plugins: resp}, nil
}
