package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/enum"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// leaderboardLimit bounds the entries returned per leaderboard request.
const leaderboardLimit = 100

type TournamentDomain interface {
	GetList(ctx context.Context, req *model.GetTournamentsRequest) (*model.GetTournamentsResponse, error)
	Get(ctx context.Context, req *model.GetTournamentRequest) (*model.GetTournamentResponse, error)
	Join(ctx context.Context, req *model.JoinTournamentRequest) (*model.JoinTournamentResponse, error)
	Leave(ctx context.Context, req *model.LeaveTournamentRequest) (*model.LeaveTournamentResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	UpdateScore(ctx context.Context, req *model.UpdateScoreRequest) (*model.UpdateScoreResponse, error)
}

type tournamentDomain struct {
	tournamentRepo  repository.TournamentRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	notifier        *Notifier
}

func NewTournamentDomain(
	tournamentRepo repository.TournamentRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	notifier *Notifier,
) TournamentDomain {
	return &tournamentDomain{
		tournamentRepo:  tournamentRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
	}
}

func (d *tournamentDomain) GetList(
	ctx context.Context, req *model.GetTournamentsRequest,
) (*model.GetTournamentsResponse, error) {
	filter := repository.GetTournamentFilter{GameID: req.GameID}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.TournamentStatusType](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	tournaments, err := d.tournamentRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tournaments: %v", err)
		return nil, errorx.Unknown
	}

	joinedSet := map[string]struct{}{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		entries, err := d.tournamentRepo.GetEntriesByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get entries: %v", err)
			return nil, errorx.Unknown
		}

		for i := range entries {
			joinedSet[entries[i].TournamentID] = struct{}{}
		}
	}

	resp := make([]model.Tournament, 0, len(tournaments))
	for i := range tournaments {
		_, joined := joinedSet[tournaments[i].ID]
		resp = append(resp, model.ConvertTournament(&tournaments[i], joined))
	}

	return &model.GetTournamentsResponse{Tournaments: resp}, nil
}

func (d *tournamentDomain) Get(
	ctx context.Context, req *model.GetTournamentRequest,
) (*model.GetTournamentResponse, error) {
	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the tournament: %v", err)
		return nil, errorx.Unknown
	}

	joined := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		_, err := d.tournamentRepo.GetEntry(ctx, tournament.ID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the entry: %v", err)
			return nil, errorx.Unknown
		}
		joined = err == nil
	}

	resp := model.GetTournamentResponse(model.ConvertTournament(tournament, joined))
	return &resp, nil
}

// Join debits the entry fee into the prize pool, claims a player slot, and
// writes the entry row plus its ledger line in one transaction. The guarded
// player increment is what enforces capacity under concurrency.
func (d *tournamentDomain) Join(
	ctx context.Context, req *model.JoinTournamentRequest,
) (*model.JoinTournamentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	tournament, err := d.tournamentRepo.GetByID(ctx, req.TournamentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the tournament: %v", err)
		return nil, errorx.Unknown
	}

	if tournament.Status == entity.TournamentEnded {
		return nil, errorx.New(errorx.Unavailable, "The tournament has ended")
	}

	if _, err := d.tournamentRepo.GetEntry(ctx, tournament.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyJoined, "You have already joined this tournament")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the entry: %v", err)
		return nil, errorx.Unknown
	}

	if tournament.CurrentPlayers >= tournament.MaxPlayers {
		return nil, errorx.New(errorx.TournamentFull, "The tournament is full")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if tournament.EntryFee > 0 {
		if err := d.userRepo.DecreaseCoins(ctx, userID, tournament.EntryFee); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InsufficientFunds, "Insufficient coins")
			}

			xcontext.Logger(ctx).Errorf("Cannot debit the player: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.tournamentRepo.IncreasePrizePool(ctx, tournament.ID, tournament.EntryFee); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grow the prize pool: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.tournamentRepo.IncreasePlayers(ctx, tournament.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.TournamentFull, "The tournament is full")
		}

		xcontext.Logger(ctx).Errorf("Cannot claim a player slot: %v", err)
		return nil, errorx.Unknown
	}

	err = d.tournamentRepo.CreateEntry(ctx, &entity.TournamentEntry{
		TournamentID: tournament.ID,
		UserID:       userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the entry: %v", err)
		return nil, errorx.Unknown
	}

	if tournament.EntryFee > 0 {
		err := d.transactionRepo.Create(ctx, &entity.Transaction{
			Base:          entity.Base{ID: uuid.NewString()},
			UserID:        userID,
			Type:          entity.TransactionTournamentEntry,
			Amount:        -tournament.EntryFee,
			ReferenceID:   tournament.ID,
			ReferenceType: "tournament",
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create the ledger line: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	// The join confirmation is the one place a user is notified about their
	// own action.
	d.notifier.Push(ctx, &entity.Notification{
		UserID:        userID,
		ActorID:       userID,
		Type:          entity.NotificationTournament,
		ReferenceID:   tournament.ID,
		ReferenceType: "tournament",
		Message:       fmt.Sprintf("You joined %s", tournament.Name),
	})

	return &model.JoinTournamentResponse{}, nil
}

// Leave removes the entry and frees the player slot. The entry fee stays in
// the prize pool; leaving is not a refund.
func (d *tournamentDomain) Leave(
	ctx context.Context, req *model.LeaveTournamentRequest,
) (*model.LeaveTournamentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.tournamentRepo.GetEntry(ctx, req.TournamentID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not joined this tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the entry: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.tournamentRepo.DeleteEntry(ctx, req.TournamentID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the entry: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.tournamentRepo.DecreasePlayers(ctx, req.TournamentID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot free the player slot: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.LeaveTournamentResponse{}, nil
}

func (d *tournamentDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	entries, err := d.tournamentRepo.GetLeaderboard(ctx, req.TournamentID, leaderboardLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := make([]string, 0, len(entries))
	for i := range entries {
		userIDs = append(userIDs, entries[i].UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := make(map[string]*entity.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	resp := make([]model.TournamentEntry, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		resp = append(resp, model.ConvertTournamentEntry(e, userMap[e.UserID]))
	}

	return &model.GetLeaderboardResponse{Entries: resp}, nil
}

func (d *tournamentDomain) UpdateScore(
	ctx context.Context, req *model.UpdateScoreRequest,
) (*model.UpdateScoreResponse, error) {
	if req.Score < 0 {
		return nil, errorx.New(errorx.BadRequest, "The score must not be negative")
	}

	userID := xcontext.RequestUserID(ctx)
	err := d.tournamentRepo.UpdateScore(ctx, req.TournamentID, userID, req.Score)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not joined this tournament")
		}

		xcontext.Logger(ctx).Errorf("Cannot update the score: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateScoreResponse{}, nil
}
