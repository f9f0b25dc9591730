package model

type GetOrCreateConversationRequest struct {
	UserIDs []string `json:"user_ids"`
}

type GetOrCreateConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type GetConversationsRequest struct{}

type GetConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type GetMessagesRequest struct {
	ConversationID string `form:"conversation_id" json:"conversation_id"`
	Offset         int    `form:"offset" json:"offset"`
	Limit          int    `form:"limit" json:"limit"`
}

type GetMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type MarkReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

type MarkReadResponse struct{}

type GetUnreadCountRequest struct{}

type GetUnreadCountResponse struct {
	Count int64 `json:"count"`
}
