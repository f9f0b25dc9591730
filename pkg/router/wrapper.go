package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := router.newRequestContext(gctx)

		ctx = func(ctx context.Context) context.Context {
			for _, m := range router.befores {
				next, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}
				ctx = next
			}

			var req Request
			var err error
			switch method {
			case http.MethodGet, http.MethodDelete:
				err = gctx.ShouldBindQuery(&req)
			default:
				if gctx.Request.ContentLength > 0 {
					err = gctx.ShouldBindJSON(&req)
				}
			}
			if err != nil {
				return xcontext.WithError(ctx,
					errorx.New(errorx.BadRequest, "Cannot parse the request"))
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			if resp != nil {
				ctx = xcontext.WithResponse(ctx, resp)
			}

			for _, after := range router.afters {
				after(ctx)
			}

			return ctx
		}(ctx)

		writeResponse(ctx)
		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func (r *Router) newRequestContext(gctx *gin.Context) context.Context {
	ctx := gctx.Request.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithSnowFlake(ctx, r.snowflake)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)
	return ctx
}
