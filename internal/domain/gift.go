package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GiftDomain interface {
	Send(ctx context.Context, req *model.SendGiftRequest) (*model.SendGiftResponse, error)
	GetReceived(ctx context.Context, req *model.GetReceivedGiftsRequest) (*model.GetReceivedGiftsResponse, error)
}

type giftDomain struct {
	giftRepo        repository.GiftRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	notifier        *Notifier
}

func NewGiftDomain(
	giftRepo repository.GiftRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	notifier *Notifier,
) GiftDomain {
	return &giftDomain{
		giftRepo:        giftRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
	}
}

// Send moves coins from the requester to the receiver. The debit, the credit,
// the gift record, and both ledger lines commit atomically; a failed debit
// leaves no trace.
func (d *giftDomain) Send(
	ctx context.Context, req *model.SendGiftRequest,
) (*model.SendGiftResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The amount must be positive")
	}

	senderID := xcontext.RequestUserID(ctx)
	if senderID == req.ReceiverID {
		return nil, errorx.New(errorx.SelfTarget, "Not allow gifting yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found receiver")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the receiver: %v", err)
		return nil, errorx.Unknown
	}

	gift := &entity.Gift{
		Base:       entity.Base{ID: uuid.NewString()},
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
		GiftType:   req.GiftType,
	}
	if req.PostID != "" {
		gift.PostID = sql.NullString{String: req.PostID, Valid: true}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.DecreaseCoins(ctx, senderID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientFunds, "Insufficient coins")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit the sender: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseCoins(ctx, req.ReceiverID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit the receiver: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.giftRepo.Create(ctx, gift); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the gift: %v", err)
		return nil, errorx.Unknown
	}

	ledgerLines := []*entity.Transaction{
		{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        senderID,
			Type:          entity.TransactionGiftSent,
			Amount:        -req.Amount,
			ReferenceID:   gift.ID,
			ReferenceType: "gift",
		},
		{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        req.ReceiverID,
			Type:          entity.TransactionGiftReceived,
			Amount:        req.Amount,
			ReferenceID:   gift.ID,
			ReferenceType: "gift",
		},
	}
	for _, line := range ledgerLines {
		if err := d.transactionRepo.Create(ctx, line); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	d.notifier.Push(ctx, &entity.Notification{
		UserID:        req.ReceiverID,
		ActorID:       senderID,
		Type:          entity.NotificationGift,
		ReferenceID:   gift.ID,
		ReferenceType: "gift",
		Message:       fmt.Sprintf("%d coins", req.Amount),
	})

	return &model.SendGiftResponse{ID: gift.ID}, nil
}

func (d *giftDomain) GetReceived(
	ctx context.Context, req *model.GetReceivedGiftsRequest,
) (*model.GetReceivedGiftsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	gifts, err := d.giftRepo.GetListByReceiverID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get gifts: %v", err)
		return nil, errorx.Unknown
	}

	userSet := map[string]struct{}{}
	for i := range gifts {
		userSet[gifts[i].SenderID] = struct{}{}
		userSet[gifts[i].ReceiverID] = struct{}{}
	}

	userIDs := make([]string, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := make(map[string]*entity.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	resp := make([]model.Gift, 0, len(gifts))
	for i := range gifts {
		g := &gifts[i]
		resp = append(resp, model.ConvertGift(g, userMap[g.SenderID], userMap[g.ReceiverID]))
	}

	return &model.GetReceivedGiftsResponse{Gifts: resp}, nil
}
