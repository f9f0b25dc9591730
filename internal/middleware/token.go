package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/superapp-lab/backend/pkg/router"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// HandleSetAccessToken mirrors the access token of login-like responses into a
// cookie for browser clients.
func HandleSetAccessToken() router.CloserFunc {
	return func(ctx context.Context) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if !ok {
			return
		}

		cfg := xcontext.Configs(ctx)
		http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
			Name:     cfg.Auth.AccessToken.Name,
			Value:    tokenResp.AccessTokenInfo(),
			Path:     "/",
			Expires:  time.Now().Add(cfg.Auth.AccessToken.Expiration),
			Secure:   true,
			HttpOnly: false,
		})
	}
}
