package domain

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameDomain interface {
	GetList(ctx context.Context, req *model.GetGamesRequest) (*model.GetGamesResponse, error)
	Get(ctx context.Context, req *model.GetGameRequest) (*model.GetGameResponse, error)
}

type gameDomain struct {
	gameRepo repository.GameRepository
}

func NewGameDomain(gameRepo repository.GameRepository) GameDomain {
	return &gameDomain{gameRepo: gameRepo}
}

func (d *gameDomain) GetList(
	ctx context.Context, req *model.GetGamesRequest,
) (*model.GetGamesResponse, error) {
	games, err := d.gameRepo.GetList(ctx, req.Category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get games: %v", err)
		return nil, errorx.Unknown
	}

	resp := make([]model.Game, 0, len(games))
	for i := range games {
		resp = append(resp, model.ConvertGame(&games[i]))
	}

	return &model.GetGamesResponse{Games: resp}, nil
}

func (d *gameDomain) Get(
	ctx context.Context, req *model.GetGameRequest,
) (*model.GetGameResponse, error) {
	game, err := d.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the game: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetGameResponse(model.ConvertGame(game))
	return &resp, nil
}
