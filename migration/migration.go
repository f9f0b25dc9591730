package migration

import (
	"context"
	"errors"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table, then makes sure the reserved
// assistant account exists.
func AutoMigrate(ctx context.Context) error {
	err := xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Follow{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Reaction{},
		&entity.Conversation{},
		&entity.ConversationMember{},
		&entity.Message{},
		&entity.Notification{},
		&entity.Gift{},
		&entity.Transaction{},
		&entity.Investment{},
		&entity.Game{},
		&entity.Tournament{},
		&entity.TournamentEntry{},
		&entity.Plugin{},
		&entity.PluginInstall{},
	)
	if err != nil {
		return err
	}

	return createChatbotUser(ctx)
}

func createChatbotUser(ctx context.Context) error {
	var existing entity.User
	err := xcontext.DB(ctx).Where("id=?", entity.ChatbotUserID).Take(&existing).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return xcontext.DB(ctx).Create(&entity.User{
		Base:       entity.Base{ID: entity.ChatbotUserID},
		Name:       "SuperApp Assistant",
		Email:      "assistant@superapp.local",
		Status:     entity.UserStatusOnline,
		IsVerified: true,
	}).Error
}
