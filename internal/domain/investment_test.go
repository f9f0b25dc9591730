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

func newInvestmentDomainForTest() InvestmentDomain {
	return NewInvestmentDomain(
		repository.NewInvestmentRepository(),
		repository.NewUserRepository(),
		repository.NewTransactionRepository(),
	)
}

func Test_investmentDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newInvestmentDomainForTest()
	resp, err := domain.Create(ctx, &model.CreateInvestmentRequest{
		TargetType: "plugin",
		TargetID:   testutil.Plugin1.ID,
		TargetName: testutil.Plugin1.Name,
		Amount:     200,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Investment.ID)
	require.Equal(t, int64(200), resp.Investment.Amount)

	investCfg := xcontext.Configs(ctx).Invest
	require.GreaterOrEqual(t, resp.Investment.ReturnRate, investCfg.MinReturnRate)
	require.LessOrEqual(t, resp.Investment.ReturnRate, investCfg.MaxReturnRate)

	investor, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-200, investor.Coins)

	lines, err := repository.NewTransactionRepository().GetListByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, entity.TransactionInvestment, lines[0].Type)
	require.Equal(t, int64(-200), lines[0].Amount)
	require.Equal(t, resp.Investment.ID, lines[0].ReferenceID)
}

func Test_investmentDomain_Create_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newInvestmentDomainForTest()

	var errx errorx.Error
	_, err := domain.Create(ctx, &model.CreateInvestmentRequest{
		TargetType: "plugin", TargetID: testutil.Plugin1.ID, Amount: -5,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidAmount, errx.Code)

	_, err = domain.Create(ctx, &model.CreateInvestmentRequest{Amount: 10})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateInvestmentRequest{
		TargetType: "plugin", TargetID: testutil.Plugin1.ID, Amount: testutil.User1.Coins + 1,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)
}

func Test_investmentDomain_Withdraw(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newInvestmentDomainForTest()
	created, err := domain.Create(ctx, &model.CreateInvestmentRequest{
		TargetType: "user",
		TargetID:   testutil.User2.ID,
		TargetName: testutil.User2.Name,
		Amount:     200,
	})
	require.NoError(t, err)

	resp, err := domain.Withdraw(ctx, &model.WithdrawInvestmentRequest{
		InvestmentID: created.Investment.ID,
	})
	require.NoError(t, err)

	// The frozen rate fixes the payout; a negative rate pays out less than
	// the principal but never goes below zero.
	wantPayout := 200 * (100 + int64(created.Investment.ReturnRate)) / 100
	if wantPayout < 0 {
		wantPayout = 0
	}
	require.Equal(t, wantPayout, resp.Payout)

	investor, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-200+wantPayout, investor.Coins)

	record, err := repository.NewInvestmentRepository().GetByID(ctx, created.Investment.ID)
	require.NoError(t, err)
	require.Equal(t, entity.InvestmentWithdrawn, record.Status)

	// The second withdraw must not pay out again.
	var errx errorx.Error
	_, err = domain.Withdraw(ctx, &model.WithdrawInvestmentRequest{
		InvestmentID: created.Investment.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	after, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, investor.Coins, after.Coins)
}

func Test_investmentDomain_Withdraw_notOwner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newInvestmentDomainForTest()
	created, err := domain.Create(ctx, &model.CreateInvestmentRequest{
		TargetType: "plugin",
		TargetID:   testutil.Plugin1.ID,
		Amount:     50,
	})
	require.NoError(t, err)

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	var errx errorx.Error
	_, err = domain.Withdraw(otherCtx, &model.WithdrawInvestmentRequest{
		InvestmentID: created.Investment.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_investmentDomain_GetMyList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newInvestmentDomainForTest()
	for i := 0; i < 3; i++ {
		_, err := domain.Create(ctx, &model.CreateInvestmentRequest{
			TargetType: "plugin",
			TargetID:   testutil.Plugin1.ID,
			Amount:     10,
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetMyList(ctx, &model.GetMyInvestmentsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Investments, 3)

	otherResp, err := domain.GetMyList(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID), &model.GetMyInvestmentsRequest{})
	require.NoError(t, err)
	require.Empty(t, otherResp.Investments)
}
