package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/testutil"
)

func newChatbotDomainForTest() ChatbotDomain {
	return NewChatbotDomain(
		repository.NewConversationRepository(),
		repository.NewMessageRepository(),
	)
}

func Test_chatbotDomain_Ask(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newChatbotDomainForTest()

	// Prompts match case- and whitespace-insensitively.
	resp, err := domain.Ask(ctx, &model.ChatbotAskRequest{Message: "  Generate a  BUSINESS plan "})
	require.NoError(t, err)
	require.Equal(t, chatbotReplies["generate a business plan"], resp.Reply)

	resp, err = domain.Ask(ctx, &model.ChatbotAskRequest{Message: "what is the meaning of life"})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf(chatbotFallback, "what is the meaning of life"), resp.Reply)

	var errx errorx.Error
	_, err = domain.Ask(ctx, &model.ChatbotAskRequest{})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_chatbotDomain_Ask_persistsExchange(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newChatbotDomainForTest()
	_, err := domain.Ask(ctx, &model.ChatbotAskRequest{Message: "find trending plugins"})
	require.NoError(t, err)

	_, err = domain.Ask(ctx, &model.ChatbotAskRequest{Message: "create a workspace"})
	require.NoError(t, err)

	// All exchanges land in a single conversation with the assistant.
	conversationRepo := repository.NewConversationRepository()
	conversationIDs, err := conversationRepo.GetIDsByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, conversationIDs, 1)

	members, err := conversationRepo.GetMembers(ctx, conversationIDs[0])
	require.NoError(t, err)
	memberIDs := []string{members[0].UserID, members[1].UserID}
	require.ElementsMatch(t, []string{testutil.User1.ID, entity.ChatbotUserID}, memberIDs)

	messages, err := repository.NewMessageRepository().GetListByConversationID(
		ctx, conversationIDs[0], 0, 10)
	require.NoError(t, err)
	require.Len(t, messages, 4)

	// The stored exchange never counts as unread.
	unread, err := repository.NewMessageRepository().CountUnreadByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)

	// The bot conversation does not shadow a human one with the same user.
	conversationDomain := newConversationDomainForTest()
	created, err := conversationDomain.GetOrCreate(ctx, &model.GetOrCreateConversationRequest{
		UserIDs: []string{testutil.User2.ID},
	})
	require.NoError(t, err)
	require.NotEqual(t, conversationIDs[0], created.Conversation.ID)

	senders := map[string]bool{}
	for i := range messages {
		senders[messages[i].SenderID] = true
	}
	require.True(t, senders[testutil.User1.ID])
	require.True(t, senders[entity.ChatbotUserID])
}
