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

func newGiftDomainForTest() GiftDomain {
	return NewGiftDomain(
		repository.NewGiftRepository(),
		repository.NewUserRepository(),
		repository.NewTransactionRepository(),
		NewNotifier(repository.NewNotificationRepository(), nil),
	)
}

func Test_giftDomain_Send(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newGiftDomainForTest()
	resp, err := domain.Send(ctx, &model.SendGiftRequest{
		ReceiverID: testutil.User2.ID,
		Amount:     150,
		GiftType:   "coins",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	userRepo := repository.NewUserRepository()
	sender, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-150, sender.Coins)

	receiver, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Coins+150, receiver.Coins)

	transactionRepo := repository.NewTransactionRepository()
	senderLines, err := transactionRepo.GetListByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Len(t, senderLines, 1)
	require.Equal(t, entity.TransactionGiftSent, senderLines[0].Type)
	require.Equal(t, int64(-150), senderLines[0].Amount)
	require.Equal(t, resp.ID, senderLines[0].ReferenceID)

	receiverLines, err := transactionRepo.GetListByUserID(ctx, testutil.User2.ID, 10)
	require.NoError(t, err)
	require.Len(t, receiverLines, 1)
	require.Equal(t, entity.TransactionGiftReceived, receiverLines[0].Type)
	require.Equal(t, int64(150), receiverLines[0].Amount)
	require.Equal(t, resp.ID, receiverLines[0].ReferenceID)

	// The receiver is notified, the sender is not.
	notificationRepo := repository.NewNotificationRepository()
	receiverUnread, err := notificationRepo.CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), receiverUnread)

	senderUnread, err := notificationRepo.CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), senderUnread)
}

func Test_giftDomain_Send_insufficientFunds(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newGiftDomainForTest()
	_, err := domain.Send(ctx, &model.SendGiftRequest{
		ReceiverID: testutil.User1.ID,
		Amount:     testutil.User3.Coins + 1,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	// A failed debit leaves nothing behind.
	userRepo := repository.NewUserRepository()
	sender, err := userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.Coins, sender.Coins)

	receiver, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins, receiver.Coins)

	lines, err := repository.NewTransactionRepository().GetListByUserID(ctx, testutil.User3.ID, 10)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func Test_giftDomain_Send_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newGiftDomainForTest()

	var errx errorx.Error
	_, err := domain.Send(ctx, &model.SendGiftRequest{ReceiverID: testutil.User2.ID, Amount: 0})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InvalidAmount, errx.Code)

	_, err = domain.Send(ctx, &model.SendGiftRequest{ReceiverID: testutil.User1.ID, Amount: 10})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SelfTarget, errx.Code)

	_, err = domain.Send(ctx, &model.SendGiftRequest{ReceiverID: "no-one", Amount: 10})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_giftDomain_GetReceived(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newGiftDomainForTest()
	_, err := domain.Send(ctx, &model.SendGiftRequest{
		ReceiverID: testutil.User2.ID,
		Amount:     25,
		GiftType:   "coins",
	})
	require.NoError(t, err)

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.GetReceived(receiverCtx, &model.GetReceivedGiftsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Gifts, 1)
	require.Equal(t, int64(25), resp.Gifts[0].Amount)
	require.Equal(t, testutil.User1.ID, resp.Gifts[0].Sender.ID)
}
