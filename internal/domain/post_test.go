package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/testutil"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

func newPostDomainForTest() PostDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewReactionRepository(),
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		NewNotifier(repository.NewNotificationRepository(), nil),
	)
}

func Test_postDomain_Create_and_Get(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	created, err := domain.Create(ctx, &model.CreatePostRequest{Content: "first post"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	post, err := domain.Get(ctx, &model.GetPostRequest{PostID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "first post", post.Content)
	require.Equal(t, testutil.User1.ID, post.Author.ID)
	require.False(t, post.Liked)

	var errx errorx.Error
	_, err = domain.Create(ctx, &model.CreatePostRequest{})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_postDomain_ToggleLike(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	resp, err := domain.ToggleLike(ctx, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.Equal(t, 1, resp.Likes)

	// The author of the post is notified.
	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	// Toggling again removes the reaction and restores the counter.
	resp, err = domain.ToggleLike(ctx, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.Equal(t, 0, resp.Likes)

	post, err := domain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, 0, post.Likes)
	require.False(t, post.Liked)
}

func Test_postDomain_ToggleLike_ownPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	resp, err := domain.ToggleLike(ctx, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)

	// Liking your own post never notifies.
	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)
}

func Test_postDomain_CreateComment(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	longComment := strings.Repeat("x", 150)
	created, err := domain.CreateComment(ctx, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: longComment,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	post, err := domain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, 1, post.Comments)

	comments, err := domain.GetComments(ctx, &model.GetCommentsRequest{
		PostID: testutil.Post1.ID,
	})
	require.NoError(t, err)
	require.Len(t, comments.Comments, 1)
	require.Equal(t, longComment, comments.Comments[0].Content)
	require.Equal(t, testutil.User1.ID, comments.Comments[0].Author.ID)

	// The notification carries a preview capped at 100 characters.
	notifications, err := repository.NewNotificationRepository().GetListByUserID(
		ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, longComment[:commentPreviewLen], notifications[0].Message)
}

func Test_postDomain_CreateComment_multibytePreview(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	_, err := domain.CreateComment(ctx, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: strings.Repeat("日", 40),
	})
	require.NoError(t, err)

	// The cap lands mid-rune at 100 bytes; the preview must back off to the
	// previous rune boundary instead of emitting invalid UTF-8.
	notifications, err := repository.NewNotificationRepository().GetListByUserID(
		ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.True(t, utf8.ValidString(notifications[0].Message))
	require.Equal(t, strings.Repeat("日", 33), notifications[0].Message)
}

func Test_postDomain_GetFeed(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newPostDomainForTest()
	followDomain := newFollowDomainForTest()

	mine, err := domain.Create(ctx, &model.CreatePostRequest{Content: "my own post"})
	require.NoError(t, err)

	// user3's post stays out of the feed until user1 follows them.
	user3Ctx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.Create(user3Ctx, &model.CreatePostRequest{Content: "from user3"})
	require.NoError(t, err)

	feed, err := domain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	require.Equal(t, mine.ID, feed.Posts[0].ID)

	_, err = followDomain.Follow(ctx, &model.FollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)

	feed, err = domain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)

	var errx errorx.Error
	_, err = domain.GetFeed(ctx, &model.GetFeedRequest{Limit: 1000})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
