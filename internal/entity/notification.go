package entity

import (
	"github.com/superapp-lab/backend/pkg/enum"
)

type NotificationType string

var (
	NotificationFollow     = enum.New(NotificationType("follow"))
	NotificationLike       = enum.New(NotificationType("like"))
	NotificationComment    = enum.New(NotificationType("comment"))
	NotificationGift       = enum.New(NotificationType("gift"))
	NotificationTournament = enum.New(NotificationType("tournament"))
	NotificationMessage    = enum.New(NotificationType("message"))
)

// Notification is a fan-out record. UserID is the recipient; ActorID is who
// caused it. No notification is created when actor equals recipient, except
// the tournament join confirmation.
type Notification struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	ActorID string
	Actor   User `gorm:"foreignKey:ActorID"`

	Type          NotificationType
	ReferenceID   string
	ReferenceType string

	// Message carries a short human-readable body, e.g. a comment preview.
	Message string

	IsRead bool
}
