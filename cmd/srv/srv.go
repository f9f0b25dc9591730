package main

import (
	"os"
	"strconv"
	"time"

	"github.com/superapp-lab/backend/config"
	"github.com/superapp-lab/backend/internal/domain"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/logger"
	"github.com/superapp-lab/backend/pkg/redis"
	"github.com/superapp-lab/backend/pkg/router"
	"github.com/superapp-lab/backend/pkg/ws"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"net/http"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	presence redis.PresenceStore
	hub      *ws.Hub

	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	reactionRepo     repository.ReactionRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	giftRepo         repository.GiftRepository
	transactionRepo  repository.TransactionRepository
	investmentRepo   repository.InvestmentRepository
	gameRepo         repository.GameRepository
	tournamentRepo   repository.TournamentRepository
	pluginRepo       repository.PluginRepository

	notifier *domain.Notifier

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	followDomain       domain.FollowDomain
	postDomain         domain.PostDomain
	conversationDomain domain.ConversationDomain
	notificationDomain domain.NotificationDomain
	giftDomain         domain.GiftDomain
	investmentDomain   domain.InvestmentDomain
	tournamentDomain   domain.TournamentDomain
	gameDomain         domain.GameDomain
	pluginDomain       domain.PluginDomain
	transactionDomain  domain.TransactionDomain
	chatbotDomain      domain.ChatbotDomain
	wsDomain           domain.WsDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "dev"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "superapp"),
			User:     getEnv("MYSQL_USER", "superapp"),
			Password: getEnv("MYSQL_PASSWORD", "superapp"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
			AllowCORS:    []string{getEnv("ALLOW_CORS", "http://localhost:3000")},
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       getEnv("ACCESS_TOKEN_NAME", "access_token"),
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", 24*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session_secret"),
			Name:   getEnv("SESSION_NAME", "superapp_session"),
		},
		Redis: config.RedisConfigs{
			Addr:      os.Getenv("REDIS_ADDR"),
			StatusTTL: getEnvDuration("STATUS_TTL", 5*time.Minute),
		},
		Invest: config.InvestConfigs{
			MinReturnRate: getEnvInt("INVEST_MIN_RETURN_RATE", -5),
			MaxReturnRate: getEnvInt("INVEST_MAX_RETURN_RATE", 35),
		},
		Tournament: config.TournamentConfigs{
			MaxPlayersLimit: getEnvInt("TOURNAMENT_MAX_PLAYERS", 100),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "dev" || s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	logLevel := gormlogger.Error
	switch s.configs.Database.LogLevel {
	case "silent":
		logLevel = gormlogger.Silent
	case "warn":
		logLevel = gormlogger.Warn
	case "info":
		logLevel = gormlogger.Info
	}

	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(err)
	}
}

// loadRedis is optional; without REDIS_ADDR the presence store is disabled
// and status reads fall back to the database column.
func (s *srv) loadRedis() {
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := redis.NewClient(s.configs.Redis.Addr)
	if err != nil {
		panic(err)
	}

	s.presence = redis.NewPresenceStore(client, s.configs.Redis.StatusTTL, "offline")
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.reactionRepo = repository.NewReactionRepository()
	s.conversationRepo = repository.NewConversationRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.giftRepo = repository.NewGiftRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.investmentRepo = repository.NewInvestmentRepository()
	s.gameRepo = repository.NewGameRepository()
	s.tournamentRepo = repository.NewTournamentRepository()
	s.pluginRepo = repository.NewPluginRepository()
}

func (s *srv) loadDomains() {
	s.hub = ws.NewHub()
	s.notifier = domain.NewNotifier(s.notificationRepo, s.hub)

	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.presence)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo, s.notifier)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.commentRepo, s.reactionRepo, s.followRepo, s.userRepo, s.notifier)
	s.conversationDomain = domain.NewConversationDomain(
		s.conversationRepo, s.messageRepo, s.userRepo, s.notifier, s.hub)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.userRepo)
	s.giftDomain = domain.NewGiftDomain(s.giftRepo, s.userRepo, s.transactionRepo, s.notifier)
	s.investmentDomain = domain.NewInvestmentDomain(s.investmentRepo, s.userRepo, s.transactionRepo)
	s.tournamentDomain = domain.NewTournamentDomain(
		s.tournamentRepo, s.userRepo, s.transactionRepo, s.notifier)
	s.gameDomain = domain.NewGameDomain(s.gameRepo)
	s.pluginDomain = domain.NewPluginDomain(s.pluginRepo, s.userRepo, s.transactionRepo)
	s.transactionDomain = domain.NewTransactionDomain(s.transactionRepo)
	s.chatbotDomain = domain.NewChatbotDomain(s.conversationRepo, s.messageRepo)
	s.wsDomain = domain.NewWsDomain(s.hub)
}
