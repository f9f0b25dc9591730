package entity

import "time"

type Conversation struct {
	Base

	// LastMessageAt orders the conversation list, most recent first.
	LastMessageAt time.Time
}

type ConversationMember struct {
	CreatedAt time.Time

	ConversationID string       `gorm:"primaryKey"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

type Message struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time

	ConversationID string       `gorm:"index"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Content string
	IsRead  bool
}
