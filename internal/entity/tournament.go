package entity

import (
	"time"

	"github.com/superapp-lab/backend/pkg/enum"
)

type TournamentStatusType string

var (
	TournamentUpcoming = enum.New(TournamentStatusType("upcoming"))
	TournamentActive   = enum.New(TournamentStatusType("active"))
	TournamentEnded    = enum.New(TournamentStatusType("ended"))
)

type Game struct {
	Base

	Name        string
	Category    string
	Description string
	MinEntryFee int64

	// Players counts users who ever joined a tournament of this game.
	Players int
}

// Tournament status is a label set at creation or administration time; the
// remaining time is computed at display time from StartsAt and EndsAt.
type Tournament struct {
	Base

	GameID string
	Game   Game `gorm:"foreignKey:GameID"`

	Name     string
	EntryFee int64

	// PrizePool accumulates entry fees. It is mutated atomically with the
	// entry row in the same transaction, and never decremented on leave.
	PrizePool int64

	MaxPlayers     int
	CurrentPlayers int

	StartsAt time.Time
	EndsAt   time.Time

	Status TournamentStatusType `gorm:"default:upcoming"`
}

type TournamentEntry struct {
	CreatedAt time.Time

	TournamentID string     `gorm:"primaryKey"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Score int64
}
