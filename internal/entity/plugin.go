package entity

import (
	"database/sql"
	"time"
)

type Plugin struct {
	Base

	Name        string
	Description string
	Category    string

	// AuthorID is empty for first-party plugins; a paid install credits the
	// author when present.
	AuthorID sql.NullString
	Author   User `gorm:"foreignKey:AuthorID"`

	Price     int64
	Downloads int
	Rating    float64
}

type PluginInstall struct {
	CreatedAt time.Time

	PluginID string `gorm:"primaryKey"`
	Plugin   Plugin `gorm:"foreignKey:PluginID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}
