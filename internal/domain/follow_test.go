package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/testutil"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

func newFollowDomainForTest() FollowDomain {
	return NewFollowDomain(
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		NewNotifier(repository.NewNotificationRepository(), nil),
	)
}

func Test_followDomain_Follow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newFollowDomainForTest()
	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	followers, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Len(t, followers.Followers, 1)
	require.Equal(t, testutil.User1.ID, followers.Followers[0].ID)

	following, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, following.Following, 1)
	require.Equal(t, testutil.User2.ID, following.Following[0].ID)

	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	// Following twice keeps a single edge and fires no second notification.
	_, err = domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	followers, err = domain.GetFollowers(ctx, &model.GetFollowersRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Len(t, followers.Followers, 1)

	unread, err = repository.NewNotificationRepository().CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
}

func Test_followDomain_Follow_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newFollowDomainForTest()

	var errx errorx.Error
	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User1.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SelfTarget, errx.Code)

	_, err = domain.Follow(ctx, &model.FollowRequest{UserID: "no-one"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_followDomain_Unfollow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newFollowDomainForTest()
	_, err := domain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	following, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, following.Following)
}

func Test_followDomain_GetFollowers_defaultsToRequester(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newFollowDomainForTest()
	_, err := domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	followers, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{})
	require.NoError(t, err)
	require.Len(t, followers.Followers, 1)
	require.Equal(t, testutil.User2.ID, followers.Followers[0].ID)
}
