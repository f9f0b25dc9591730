package model

// AccessToken is the object embedded in the JWT access token.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *RegisterResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

func (r *RegisterResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

func (r *LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

type LogoutRequest struct{}

type LogoutResponse struct{}

func (r *LogoutResponse) DeleteSession() bool {
	return true
}
