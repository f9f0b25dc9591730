package repository

import (
	"context"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type FollowRepository interface {
	Create(ctx context.Context, data *entity.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	GetFollowers(ctx context.Context, userID string) ([]entity.User, error)
	GetFollowing(ctx context.Context, userID string) ([]entity.User, error)
	GetFollowingIDs(ctx context.Context, userID string) ([]string, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Delete(&entity.Follow{}).Error
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Joins("join follows on follows.follower_id=users.id").
		Where("follows.following_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Joins("join follows on follows.following_id=users.id").
		Where("follows.follower_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
