package entity

import "github.com/superapp-lab/backend/pkg/enum"

type TransactionType string

var (
	TransactionGiftSent        = enum.New(TransactionType("gift_sent"))
	TransactionGiftReceived    = enum.New(TransactionType("gift_received"))
	TransactionInvestment      = enum.New(TransactionType("investment"))
	TransactionWithdraw        = enum.New(TransactionType("withdraw"))
	TransactionTournamentEntry = enum.New(TransactionType("tournament_entry"))
	TransactionTournamentPrize = enum.New(TransactionType("tournament_prize"))
	TransactionPluginPurchase  = enum.New(TransactionType("plugin_purchase"))
	TransactionPluginIncome    = enum.New(TransactionType("plugin_income"))
)

// Transaction is one immutable signed ledger line for one user. Every coin
// movement writes one line per affected user side; the lines are the audit
// trail, never the source of truth for the current balance.
type Transaction struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Type TransactionType

	// Amount is signed: negative for debits, positive for credits.
	Amount int64

	ReferenceID   string
	ReferenceType string
}
