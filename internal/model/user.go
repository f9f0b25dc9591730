package model

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetUserResponse User

type UpdateUserRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateUserResponse struct{}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct{}

type GetTopUsersRequest struct {
	Limit int `form:"limit" json:"limit"`
}

type GetTopUsersResponse struct {
	Users []User `json:"users"`
}

type SearchUsersRequest struct {
	Q      string `form:"q" json:"q"`
	Offset int    `form:"offset" json:"offset"`
	Limit  int    `form:"limit" json:"limit"`
}

type SearchUsersResponse struct {
	Users []ShortUser `json:"users"`
}
