package entity

import "github.com/superapp-lab/backend/pkg/enum"

type InvestmentStatusType string

var (
	InvestmentActive    = enum.New(InvestmentStatusType("active"))
	InvestmentWithdrawn = enum.New(InvestmentStatusType("withdrawn"))
)

type Investment struct {
	Base

	InvestorID string `gorm:"index"`
	Investor   User   `gorm:"foreignKey:InvestorID"`

	TargetType string
	TargetID   string
	TargetName string

	Amount int64

	// ReturnRate is a whole percent assigned once at creation and never
	// recomputed. It may be negative.
	ReturnRate int

	Status InvestmentStatusType `gorm:"default:active"`
}
