package domain

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type InvestmentDomain interface {
	Create(ctx context.Context, req *model.CreateInvestmentRequest) (*model.CreateInvestmentResponse, error)
	GetMyList(ctx context.Context, req *model.GetMyInvestmentsRequest) (*model.GetMyInvestmentsResponse, error)
	Withdraw(ctx context.Context, req *model.WithdrawInvestmentRequest) (*model.WithdrawInvestmentResponse, error)
}

type investmentDomain struct {
	investmentRepo  repository.InvestmentRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
}

func NewInvestmentDomain(
	investmentRepo repository.InvestmentRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
) InvestmentDomain {
	return &investmentDomain{
		investmentRepo:  investmentRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// Create debits the invested amount and assigns a whole-percent return rate
// drawn once from the configured window. The rate is frozen on the record and
// never recomputed.
func (d *investmentDomain) Create(
	ctx context.Context, req *model.CreateInvestmentRequest,
) (*model.CreateInvestmentResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The amount must be positive")
	}

	if req.TargetType == "" || req.TargetID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty target")
	}

	investCfg := xcontext.Configs(ctx).Invest
	rate := investCfg.MinReturnRate
	if window := investCfg.MaxReturnRate - investCfg.MinReturnRate; window > 0 {
		rate += rand.Intn(window + 1)
	}

	investment := &entity.Investment{
		Base:       entity.Base{ID: uuid.NewString()},
		InvestorID: xcontext.RequestUserID(ctx),
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		TargetName: req.TargetName,
		Amount:     req.Amount,
		ReturnRate: rate,
		Status:     entity.InvestmentActive,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.DecreaseCoins(ctx, investment.InvestorID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientFunds, "Insufficient coins")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit the investor: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.investmentRepo.Create(ctx, investment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the investment: %v", err)
		return nil, errorx.Unknown
	}

	err := d.transactionRepo.Create(ctx, &entity.Transaction{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        investment.InvestorID,
		Type:          entity.TransactionInvestment,
		Amount:        -req.Amount,
		ReferenceID:   investment.ID,
		ReferenceType: "investment",
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateInvestmentResponse{
		Investment: model.ConvertInvestment(investment),
	}, nil
}

func (d *investmentDomain) GetMyList(
	ctx context.Context, req *model.GetMyInvestmentsRequest,
) (*model.GetMyInvestmentsResponse, error) {
	investments, err := d.investmentRepo.GetListByInvestorID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get investments: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Investment, 0, len(investments))
	for i := range investments {
		resp = append(resp, model.ConvertInvestment(&investments[i]))
	}

	return &model.GetMyInvestmentsResponse{Investments: resp}, nil
}

// Withdraw pays out floor(amount * (100 + rate) / 100) and closes the
// investment. The guarded status transition makes a second withdrawal fail
// even under concurrent requests.
func (d *investmentDomain) Withdraw(
	ctx context.Context, req *model.WithdrawInvestmentRequest,
) (*model.WithdrawInvestmentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	investment, err := d.investmentRepo.GetByID(ctx, req.InvestmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found investment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the investment: %v", err)
		return nil, errorx.Unknown
	}

	if investment.InvestorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Not your investment")
	}

	if investment.Status != entity.InvestmentActive {
		return nil, errorx.New(errorx.Unavailable, "The investment has already been withdrawn")
	}

	payout := investment.Amount * (100 + int64(investment.ReturnRate)) / 100
	if payout < 0 {
		payout = 0
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.investmentRepo.MarkWithdrawn(ctx, investment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "The investment has already been withdrawn")
		}

		xcontext.Logger(ctx).Errorf("Cannot close the investment: %v", err)
		return nil, errorx.Unknown
	}

	if payout > 0 {
		if err := d.userRepo.IncreaseCoins(ctx, userID, payout); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit the investor: %v", err)
			return nil, errorx.Unknown
		}
	}

	err = d.transactionRepo.Create(ctx, &entity.Transaction{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		Type:          entity.TransactionWithdraw,
		Amount:        payout,
		ReferenceID:   investment.ID,
		ReferenceType: "investment",
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.WithdrawInvestmentResponse{Payout: payout}, nil
}
