package middleware

import (
	"context"
	"strings"

	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/router"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

// AuthVerifier resolves the requesting user from the access token or the
// session cookie, whichever the route accepts.
type AuthVerifier struct {
	useAccessToken bool
	useSession     bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) WithSession() *AuthVerifier {
	a.useSession = true
	return a
}

// WithOptional lets anonymous requests through with an empty user id instead
// of rejecting them, for public routes that enrich their response when a user
// is known.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			if token := bearerToken(ctx); token != "" {
				info, err := xcontext.TokenEngine(ctx).Verify(token)
				if err != nil {
					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}

				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}
		}

		if a.useSession {
			if id := sessionUserID(ctx); id != "" {
				return xcontext.WithRequestUserID(ctx, id), nil
			}
		}

		if a.optional {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func bearerToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if !found || auth != "Bearer" {
		return ""
	}

	return token
}

func sessionUserID(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	id, ok := session.Values["user_id"].(string)
	if !ok {
		return ""
	}

	return id
}
