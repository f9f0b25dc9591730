package model

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Status    string `json:"status"`
}

type User struct {
	ShortUser
	Email      string  `json:"email,omitempty"`
	Bio        string  `json:"bio"`
	Coins      int64   `json:"coins"`
	Rating     float64 `json:"rating"`
	IsVerified bool    `json:"is_verified"`
	CreatedAt  string  `json:"created_at"`
}

type Post struct {
	ID        string    `json:"id"`
	Author    ShortUser `json:"author"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Liked     bool      `json:"liked"`
	CreatedAt string    `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    ShortUser `json:"author"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

type Conversation struct {
	ID            string      `json:"id"`
	Members       []ShortUser `json:"members"`
	LastMessage   *Message    `json:"last_message,omitempty"`
	LastMessageAt string      `json:"last_message_at"`
	UnreadCount   int64       `json:"unread_count"`
}

type Message struct {
	ID             int64  `json:"id,string"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

type Notification struct {
	ID            string    `json:"id"`
	Actor         ShortUser `json:"actor"`
	Type          string    `json:"type"`
	ReferenceID   string    `json:"reference_id"`
	ReferenceType string    `json:"reference_type"`
	Message       string    `json:"message,omitempty"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     string    `json:"created_at"`
}

type Gift struct {
	ID        string    `json:"id"`
	Sender    ShortUser `json:"sender"`
	Receiver  ShortUser `json:"receiver"`
	PostID    string    `json:"post_id,omitempty"`
	Amount    int64     `json:"amount"`
	GiftType  string    `json:"gift_type"`
	CreatedAt string    `json:"created_at"`
}

type Transaction struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	ReferenceID   string `json:"reference_id"`
	ReferenceType string `json:"reference_type"`
	CreatedAt     string `json:"created_at"`
}

type Investment struct {
	ID         string `json:"id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Amount     int64  `json:"amount"`
	ReturnRate int    `json:"return_rate"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	MinEntryFee int64  `json:"min_entry_fee"`
	Players     int    `json:"players"`
}

type Tournament struct {
	ID             string `json:"id"`
	GameID         string `json:"game_id"`
	Name           string `json:"name"`
	EntryFee       int64  `json:"entry_fee"`
	PrizePool      int64  `json:"prize_pool"`
	MaxPlayers     int    `json:"max_players"`
	CurrentPlayers int    `json:"current_players"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	Status         string `json:"status"`
	Joined         bool   `json:"joined"`
}

type TournamentEntry struct {
	TournamentID string    `json:"tournament_id"`
	User         ShortUser `json:"user"`
	Score        int64     `json:"score"`
	JoinedAt     string    `json:"joined_at"`
}

type Plugin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AuthorID    string `json:"author_id,omitempty"`
	Price       int64  `json:"price"`
	Downloads   int    `json:"downloads"`
	Rating      float64 `json:"rating"`
	Installed   bool   `json:"installed"`
}
