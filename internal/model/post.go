package model

type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type CreatePostResponse struct {
	ID string `json:"id"`
}

type GetPostRequest struct {
	PostID string `form:"post_id" json:"post_id"`
}

type GetPostResponse Post

type GetFeedRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type GetFeedResponse struct {
	Posts []Post `json:"posts"`
}

type ToggleLikeRequest struct {
	PostID string `json:"post_id"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type CreateCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	ID string `json:"id"`
}

type GetCommentsRequest struct {
	PostID string `form:"post_id" json:"post_id"`
	Offset int    `form:"offset" json:"offset"`
	Limit  int    `form:"limit" json:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}
