package model

type ChatbotAskRequest struct {
	Message string `json:"message"`
}

type ChatbotAskResponse struct {
	Reply string `json:"reply"`
}
