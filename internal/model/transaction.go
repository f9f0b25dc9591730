package model

type GetMyTransactionsRequest struct{}

type GetMyTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
