package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/testutil"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

func newPluginDomainForTest() PluginDomain {
	return NewPluginDomain(
		repository.NewPluginRepository(),
		repository.NewUserRepository(),
		repository.NewTransactionRepository(),
	)
}

func Test_pluginDomain_Install_free(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPluginDomainForTest()
	_, err := domain.Install(ctx, &model.InstallPluginRequest{PluginID: testutil.Plugin1.ID})
	require.NoError(t, err)

	plugin, err := domain.Get(ctx, &model.GetPluginRequest{PluginID: testutil.Plugin1.ID})
	require.NoError(t, err)
	require.Equal(t, 1, plugin.Downloads)
	require.True(t, plugin.Installed)

	// A free install moves no coins and writes no ledger line.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins, user.Coins)

	lines, err := repository.NewTransactionRepository().GetListByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Empty(t, lines)

	var errx errorx.Error
	_, err = domain.Install(ctx, &model.InstallPluginRequest{PluginID: testutil.Plugin1.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_pluginDomain_Install_paid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPluginDomainForTest()
	_, err := domain.Install(ctx, &model.InstallPluginRequest{PluginID: testutil.Plugin2.ID})
	require.NoError(t, err)

	// The price moves from the buyer to the author with a line on each side.
	userRepo := repository.NewUserRepository()
	buyer, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-testutil.Plugin2.Price, buyer.Coins)

	author, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Coins+testutil.Plugin2.Price, author.Coins)

	transactionRepo := repository.NewTransactionRepository()
	buyerLines, err := transactionRepo.GetListByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Len(t, buyerLines, 1)
	require.Equal(t, entity.TransactionPluginPurchase, buyerLines[0].Type)
	require.Equal(t, -testutil.Plugin2.Price, buyerLines[0].Amount)

	authorLines, err := transactionRepo.GetListByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, authorLines, 1)
	require.Equal(t, entity.TransactionPluginIncome, authorLines[0].Type)
	require.Equal(t, testutil.Plugin2.Price, authorLines[0].Amount)
}

func Test_pluginDomain_Install_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPluginDomainForTest()

	// user3 cannot afford the paid plugin; nothing changes.
	var errx errorx.Error
	_, err := domain.Install(ctx, &model.InstallPluginRequest{PluginID: testutil.Plugin2.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	plugin, err := repository.NewPluginRepository().GetByID(ctx, testutil.Plugin2.ID)
	require.NoError(t, err)
	require.Equal(t, 0, plugin.Downloads)

	// The author cannot buy their own plugin.
	_, err = domain.Install(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.InstallPluginRequest{PluginID: testutil.Plugin2.ID},
	)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SelfTarget, errx.Code)

	_, err = domain.Install(ctx, &model.InstallPluginRequest{PluginID: "no-plugin"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_pluginDomain_GetList_and_GetInstalled(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPluginDomainForTest()
	_, err := domain.Install(ctx, &model.InstallPluginRequest{PluginID: testutil.Plugin1.ID})
	require.NoError(t, err)

	list, err := domain.GetList(ctx, &model.GetPluginsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Plugins, 2)
	for _, plugin := range list.Plugins {
		require.Equal(t, plugin.ID == testutil.Plugin1.ID, plugin.Installed)
	}

	finance, err := domain.GetList(ctx, &model.GetPluginsRequest{Category: "finance"})
	require.NoError(t, err)
	require.Len(t, finance.Plugins, 1)
	require.Equal(t, testutil.Plugin2.ID, finance.Plugins[0].ID)

	installed, err := domain.GetInstalled(ctx, &model.GetInstalledPluginsRequest{})
	require.NoError(t, err)
	require.Len(t, installed.Plugins, 1)
	require.Equal(t, testutil.Plugin1.ID, installed.Plugins[0].ID)
	require.True(t, installed.Plugins[0].Installed)
}
