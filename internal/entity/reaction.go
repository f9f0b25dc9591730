package entity

import (
	"time"

	"github.com/superapp-lab/backend/pkg/enum"
)

type ReactionType string

var (
	ReactionLike = enum.New(ReactionType("like"))
)

// Reaction ties a user to a post. At most one row exists per
// (user, post, type); toggling it moves the post counter by exactly one.
type Reaction struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	PostID string `gorm:"primaryKey"`
	Post   Post   `gorm:"foreignKey:PostID"`

	Type ReactionType `gorm:"primaryKey"`
}
