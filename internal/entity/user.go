package entity

import "github.com/superapp-lab/backend/pkg/enum"

type UserStatusType string

var (
	UserStatusOnline  = enum.New(UserStatusType("online"))
	UserStatusAway    = enum.New(UserStatusType("away"))
	UserStatusOffline = enum.New(UserStatusType("offline"))
)

// DefaultCoins is the balance granted to every new account.
const DefaultCoins = 100

// ChatbotUserID is the reserved account the assistant replies from. It is
// created by the migration and can never log in.
const ChatbotUserID = "superapp-assistant"

type User struct {
	Base

	Name           string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string
	Bio            string
	AvatarURL      string

	// Coins is the authoritative balance. It is only ever mutated through
	// conditional updates and must never go negative.
	Coins int64 `gorm:"default:100"`

	Rating     float64
	Status     UserStatusType `gorm:"default:offline"`
	IsVerified bool
}
