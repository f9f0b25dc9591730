package model

type SendGiftRequest struct {
	ReceiverID string `json:"receiver_id"`
	PostID     string `json:"post_id"`
	Amount     int64  `json:"amount"`
	GiftType   string `json:"gift_type"`
}

type SendGiftResponse struct {
	ID string `json:"id"`
}

type GetReceivedGiftsRequest struct{}

type GetReceivedGiftsResponse struct {
	Gifts []Gift `json:"gifts"`
}
