package entity

type Post struct {
	Base

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content  string
	ImageURL string

	// Likes and Comments are maintained counters, updated in the same
	// transaction as the reaction or comment row they count.
	Likes    int
	Comments int
}

type Comment struct {
	Base

	PostID string
	Post   Post `gorm:"foreignKey:PostID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Content string
}
