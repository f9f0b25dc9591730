package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

// chatbotReplies maps a normalized prompt to its canned reply. Anything else
// falls through to chatbotFallback. This is a lookup table, not a dialogue
// system.
var chatbotReplies = map[string]string{
	"generate a business plan": "I'd be happy to help you create a business plan! Let's start with your core idea. What product or service would you like to build? I'll help you outline the market opportunity, revenue model, and growth strategy.",
	"find trending plugins":    "Here are the top trending plugins right now:\n\n1. CryptoPool - Liquidity pooling (12.4K downloads)\n2. MAGA - Market Analytics (15.6K downloads)\n3. CopyX - Copy Trading (8.9K downloads)\n\nWould you like details on any of these?",
	"analyze my investments":   "Let me analyze your portfolio:\n\nTotal Value: 15,290 coins\nTotal Return: +22.8%\nBest Performer: CryptoPool Plugin (+35%)\n\nYour portfolio is well-diversified across users and plugins. Consider increasing allocation to high-rating users for stable returns.",
	"create a workspace":       "I'll help you set up a new workspace! The plugin editor supports:\n\n- Visual node-based workflows\n- Custom triggers and actions\n- API integrations\n- Automated testing\n\nShall I guide you through creating your first plugin?",
}

const chatbotFallback = "I understand you're asking about %q. That's a great question! Let me help you with that. Based on the current market trends and your profile, I'd recommend exploring our marketplace for relevant tools and connecting with top-rated users in this space. Would you like me to provide more specific recommendations?"

type ChatbotDomain interface {
	Ask(ctx context.Context, req *model.ChatbotAskRequest) (*model.ChatbotAskResponse, error)
}

type chatbotDomain struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

func NewChatbotDomain(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
) ChatbotDomain {
	return &chatbotDomain{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// Ask replies from the rule table and records both sides of the exchange in
// the requester's bot conversation.
func (d *chatbotDomain) Ask(
	ctx context.Context, req *model.ChatbotAskRequest,
) (*model.ChatbotAskResponse, error) {
	if req.Message == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	reply, ok := chatbotReplies[normalizePrompt(req.Message)]
	if !ok {
		reply = fmt.Sprintf(chatbotFallback, req.Message)
	}

	userID := xcontext.RequestUserID(ctx)
	conversationID, err := d.getOrCreateBotConversation(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	exchange := []*entity.Message{
		{
			ID:             xcontext.SnowFlake(ctx).Generate().Int64(),
			ConversationID: conversationID,
			SenderID:       userID,
			Content:        req.Message,
			IsRead:         true,
		},
		{
			ID:             xcontext.SnowFlake(ctx).Generate().Int64(),
			ConversationID: conversationID,
			SenderID:       entity.ChatbotUserID,
			Content:        reply,
			IsRead:         true,
		},
	}
	for _, message := range exchange {
		if err := d.messageRepo.Create(ctx, message); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the message: %v", err)
			return nil, errorx.Unknown
		}
	}

	err = d.conversationRepo.UpdateLastMessageAt(ctx, conversationID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot bump the conversation: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ChatbotAskResponse{Reply: reply}, nil
}

func normalizePrompt(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (d *chatbotDomain) getOrCreateBotConversation(
	ctx context.Context, userID string,
) (string, error) {
	conversationIDs, err := d.conversationRepo.GetIDsByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation ids: %v", err)
		return "", errorx.Unknown
	}

	want := map[string]struct{}{userID: {}, entity.ChatbotUserID: {}}
	for _, id := range conversationIDs {
		members, err := d.conversationRepo.GetMembers(ctx, id)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get conversation members: %v", err)
			return "", errorx.Unknown
		}

		if sameMemberSet(members, want) {
			return id, nil
		}
	}

	conversation := &entity.Conversation{
		Base:          entity.Base{ID: uuid.NewString()},
		LastMessageAt: time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.conversationRepo.Create(ctx, conversation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the conversation: %v", err)
		return "", errorx.Unknown
	}

	for memberID := range want {
		err := d.conversationRepo.CreateMember(ctx, &entity.ConversationMember{
			ConversationID: conversation.ID,
			UserID:         memberID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the conversation member: %v", err)
			return "", errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return conversation.ID, nil
}
