package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/superapp-lab/backend/config"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/pkg/authenticator"
	"github.com/superapp-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context for the
// rest of the pipeline; a returned error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler with the response or error already
// recorded into the context.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine gin.IRouter

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	snowflake    *snowflake.Node
	sessionStore sessions.Store
	tokenEngine  authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
	afters  []CloserFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:       gin.New(),
		db:           db,
		cfg:          cfg,
		logger:       logger,
		snowflake:    node,
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](
			cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration),
	}
}

// Branch returns a router sharing the same underlying engine but with an
// independent middleware pipeline. Routes registered on the branch see the
// parent's middlewares plus its own.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]CloserFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.afters = append(r.afters, closer)
}

// AddCloser registers a closer running after the response has been written,
// regardless of the request outcome.
func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.DELETE(pattern, wrapHandler(r, http.MethodDelete, handler))
}

func (r *Router) Static(relativePath, root string) {
	r.engine.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine.(*gin.Engine)
}
