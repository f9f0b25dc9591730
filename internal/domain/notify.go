package domain

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/ws"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

// Notifier fans a notification out to storage and to connected websocket
// clients. It must only be called after the transaction of the triggering
// operation has committed: a failed fan-out is logged and never fails the
// operation itself.
type Notifier struct {
	notificationRepo repository.NotificationRepository
	hub              *ws.Hub
}

func NewNotifier(notificationRepo repository.NotificationRepository, hub *ws.Hub) *Notifier {
	return &Notifier{notificationRepo: notificationRepo, hub: hub}
}

// previewOf shortens s to at most max bytes without splitting a rune.
func previewOf(s string, max int) string {
	if len(s) <= max {
		return s
	}

	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}

	return s[:max]
}

func (n *Notifier) Push(ctx context.Context, data *entity.Notification) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}

	if err := n.notificationRepo.Create(ctx, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the notification: %v", err)
		return
	}

	if n.hub == nil {
		return
	}

	event := map[string]any{
		"type": "notification",
		"data": model.ConvertNotification(data, nil),
	}
	if err := n.hub.SendToUser(data.UserID, event); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot push the notification: %v", err)
	}
}
