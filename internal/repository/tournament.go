package repository

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetTournamentFilter struct {
	GameID string
	Status entity.TournamentStatusType
}

type TournamentRepository interface {
	Create(ctx context.Context, data *entity.Tournament) error
	GetByID(ctx context.Context, id string) (*entity.Tournament, error)
	GetList(ctx context.Context, filter GetTournamentFilter) ([]entity.Tournament, error)
	IncreasePlayers(ctx context.Context, id string) error
	DecreasePlayers(ctx context.Context, id string) error
	IncreasePrizePool(ctx context.Context, id string, amount int64) error
	CreateEntry(ctx context.Context, data *entity.TournamentEntry) error
	DeleteEntry(ctx context.Context, tournamentID, userID string) error
	GetEntry(ctx context.Context, tournamentID, userID string) (*entity.TournamentEntry, error)
	GetEntriesByUserID(ctx context.Context, userID string) ([]entity.TournamentEntry, error)
	GetLeaderboard(ctx context.Context, tournamentID string, limit int) ([]entity.TournamentEntry, error)
	UpdateScore(ctx context.Context, tournamentID, userID string, score int64) error
}

type tournamentRepository struct{}

func NewTournamentRepository() *tournamentRepository {
	return &tournamentRepository{}
}

func (r *tournamentRepository) Create(ctx context.Context, data *entity.Tournament) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*entity.Tournament, error) {
	var record entity.Tournament
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *tournamentRepository) GetList(
	ctx context.Context, filter GetTournamentFilter,
) ([]entity.Tournament, error) {
	tx := xcontext.DB(ctx)
	if filter.GameID != "" {
		tx = tx.Where("game_id=?", filter.GameID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var records []entity.Tournament
	if err := tx.Order("starts_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// IncreasePlayers admits one more player only while there is room. A full
// tournament makes this return gorm.ErrRecordNotFound.
func (r *tournamentRepository) IncreasePlayers(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=? AND current_players < max_players", id).
		Update("current_players", gorm.Expr("current_players+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *tournamentRepository) DecreasePlayers(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=? AND current_players > 0", id).
		Update("current_players", gorm.Expr("current_players-1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *tournamentRepository) IncreasePrizePool(ctx context.Context, id string, amount int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=?", id).
		Update("prize_pool", gorm.Expr("prize_pool+?", amount)).Error
}

func (r *tournamentRepository) CreateEntry(ctx context.Context, data *entity.TournamentEntry) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *tournamentRepository) DeleteEntry(ctx context.Context, tournamentID, userID string) error {
	return xcontext.DB(ctx).
		Where("tournament_id=? AND user_id=?", tournamentID, userID).
		Delete(&entity.TournamentEntry{}).Error
}

func (r *tournamentRepository) GetEntry(
	ctx context.Context, tournamentID, userID string,
) (*entity.TournamentEntry, error) {
	var record entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("tournament_id=? AND user_id=?", tournamentID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *tournamentRepository) GetEntriesByUserID(
	ctx context.Context, userID string,
) ([]entity.TournamentEntry, error) {
	var records []entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *tournamentRepository) GetLeaderboard(
	ctx context.Context, tournamentID string, limit int,
) ([]entity.TournamentEntry, error) {
	var records []entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("tournament_id=?", tournamentID).
		Order("score DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateScore checks the entry first instead of trusting RowsAffected: on
// MySQL an update that resubmits the current score affects zero rows, which
// must not read as a missing entry.
func (r *tournamentRepository) UpdateScore(
	ctx context.Context, tournamentID, userID string, score int64,
) error {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.TournamentEntry{}).
		Where("tournament_id=? AND user_id=?", tournamentID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	return xcontext.DB(ctx).
		Model(&entity.TournamentEntry{}).
		Where("tournament_id=? AND user_id=?", tournamentID, userID).
		Update("score", score).Error
}
