package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/testutil"
)

func newNotificationDomainForTest() NotificationDomain {
	return NewNotificationDomain(
		repository.NewNotificationRepository(),
		repository.NewUserRepository(),
	)
}

func Test_notificationDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	notifier := NewNotifier(repository.NewNotificationRepository(), nil)
	notifier.Push(ctx, &entity.Notification{
		UserID:        testutil.User2.ID,
		ActorID:       testutil.User1.ID,
		Type:          entity.NotificationFollow,
		ReferenceID:   testutil.User1.ID,
		ReferenceType: "user",
	})
	notifier.Push(ctx, &entity.Notification{
		UserID:        testutil.User2.ID,
		ActorID:       testutil.User3.ID,
		Type:          entity.NotificationGift,
		ReferenceID:   "gift1",
		ReferenceType: "gift",
		Message:       "10 coins",
	})

	domain := newNotificationDomainForTest()
	resp, err := domain.GetList(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	for _, notification := range resp.Notifications {
		require.False(t, notification.IsRead)
		require.NotEmpty(t, notification.Actor.ID)
	}
}

func Test_notificationDomain_MarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	notifier := NewNotifier(repository.NewNotificationRepository(), nil)
	first := &entity.Notification{
		UserID:  testutil.User2.ID,
		ActorID: testutil.User1.ID,
		Type:    entity.NotificationLike,
	}
	notifier.Push(ctx, first)
	notifier.Push(ctx, &entity.Notification{
		UserID:  testutil.User2.ID,
		ActorID: testutil.User1.ID,
		Type:    entity.NotificationComment,
	})

	domain := newNotificationDomainForTest()
	count, err := domain.GetUnreadCount(ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), count.Count)

	_, err = domain.MarkRead(ctx, &model.MarkNotificationReadRequest{NotificationID: first.ID})
	require.NoError(t, err)

	count, err = domain.GetUnreadCount(ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), count.Count)

	_, err = domain.MarkAllRead(ctx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	count, err = domain.GetUnreadCount(ctx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)
}
