package model

type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetFollowersResponse struct {
	Followers []ShortUser `json:"followers"`
}

type GetFollowingRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetFollowingResponse struct {
	Following []ShortUser `json:"following"`
}
