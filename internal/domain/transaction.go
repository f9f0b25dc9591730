package domain

import (
	"context"

	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

// transactionListLimit caps the wallet history; older lines stay in storage
// but are not served.
const transactionListLimit = 50

type TransactionDomain interface {
	GetMyList(ctx context.Context, req *model.GetMyTransactionsRequest) (*model.GetMyTransactionsResponse, error)
}

type transactionDomain struct {
	transactionRepo repository.TransactionRepository
}

func NewTransactionDomain(transactionRepo repository.TransactionRepository) TransactionDomain {
	return &transactionDomain{transactionRepo: transactionRepo}
}

func (d *transactionDomain) GetMyList(
	ctx context.Context, req *model.GetMyTransactionsRequest,
) (*model.GetMyTransactionsResponse, error) {
	transactions, err := d.transactionRepo.GetListByUserID(
		ctx, xcontext.RequestUserID(ctx), transactionListLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Transaction, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, model.ConvertTransaction(&transactions[i]))
	}

	return &model.GetMyTransactionsResponse{Transactions: resp}, nil
}
