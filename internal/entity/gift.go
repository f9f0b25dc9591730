package entity

import "database/sql"

// Gift is an immutable record of a coin transfer between two users. It is
// never updated after creation.
type Gift struct {
	Base

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	ReceiverID string
	Receiver   User `gorm:"foreignKey:ReceiverID"`

	PostID sql.NullString
	Post   Post `gorm:"foreignKey:PostID"`

	Amount   int64
	GiftType string
}
