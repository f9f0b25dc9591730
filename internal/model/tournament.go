package model

type GetGamesRequest struct {
	Category string `form:"category" json:"category"`
}

type GetGamesResponse struct {
	Games []Game `json:"games"`
}

type GetGameRequest struct {
	GameID string `form:"game_id" json:"game_id"`
}

type GetGameResponse Game

type GetTournamentsRequest struct {
	GameID string `form:"game_id" json:"game_id"`
	Status string `form:"status" json:"status"`
}

type GetTournamentsResponse struct {
	Tournaments []Tournament `json:"tournaments"`
}

type GetTournamentRequest struct {
	TournamentID string `form:"tournament_id" json:"tournament_id"`
}

type GetTournamentResponse Tournament

type JoinTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type JoinTournamentResponse struct{}

type LeaveTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type LeaveTournamentResponse struct{}

type GetLeaderboardRequest struct {
	TournamentID string `form:"tournament_id" json:"tournament_id"`
}

type GetLeaderboardResponse struct {
	Entries []TournamentEntry `json:"entries"`
}

type UpdateScoreRequest struct {
	TournamentID string `json:"tournament_id"`
	Score        int64  `json:"score"`
}

type UpdateScoreResponse struct{}
