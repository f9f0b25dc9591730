package model

type CreateInvestmentRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Amount     int64  `json:"amount"`
}

type CreateInvestmentResponse struct {
	Investment Investment `json:"investment"`
}

type GetMyInvestmentsRequest struct{}

type GetMyInvestmentsResponse struct {
	Investments []Investment `json:"investments"`
}

type WithdrawInvestmentRequest struct {
	InvestmentID string `json:"investment_id"`
}

type WithdrawInvestmentResponse struct {
	Payout int64 `json:"payout"`
}
