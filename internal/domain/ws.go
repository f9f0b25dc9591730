package domain

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/ws"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type WsDomain interface {
	Serve(ctx context.Context, req *model.ServeNotificationRequest) (*model.ServeNotificationResponse, error)
}

type wsDomain struct {
	hub *ws.Hub
}

func NewWsDomain(hub *ws.Hub) WsDomain {
	return &wsDomain{hub: hub}
}

// Serve upgrades the request to a websocket and registers it with the hub.
// The nil response tells the router the connection was hijacked and no body
// must be written.
func (d *wsDomain) Serve(
	ctx context.Context, req *model.ServeNotificationRequest,
) (*model.ServeNotificationResponse, error) {
	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade the connection: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Cannot upgrade the connection")
	}

	ws.NewClient(d.hub, conn, xcontext.RequestUserID(ctx))
	return nil, nil
}
