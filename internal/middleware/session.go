package middleware

import (
	"context"

	"github.com/superapp-lab/backend/pkg/router"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession persists session values declared by the response object
// before the response body is written.
func HandleSaveSession() router.CloserFunc {
	return func(ctx context.Context) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			xcontext.Logger(ctx).Errorf("cannot get the session: %v", err)
			return
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Errorf("cannot save the session: %v", err)
		}
	}
}

// HandleDeleteSession expires the session of responses that ask for it, used
// by logout.
type DeleteSessionResponse interface {
	DeleteSession() bool
}

func HandleDeleteSession() router.CloserFunc {
	return func(ctx context.Context) {
		resp, ok := xcontext.Response(ctx).(DeleteSessionResponse)
		if !ok || !resp.DeleteSession() {
			return
		}

		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			xcontext.Logger(ctx).Errorf("cannot get the session: %v", err)
			return
		}

		session.Options.MaxAge = -1
		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			xcontext.Logger(ctx).Errorf("cannot expire the session: %v", err)
		}
	}
}
