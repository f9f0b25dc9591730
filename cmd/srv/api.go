package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/superapp-lab/backend/internal/middleware"
	"github.com/superapp-lab/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetAccessToken())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
	}

	logoutRouter := s.router.Branch()
	logoutRouter.After(middleware.HandleDeleteSession())
	{
		router.POST(logoutRouter, "/logout", s.authDomain.Logout)
	}

	// These following APIs need authentication.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken().WithSession()
	authedRouter := s.router.Branch()
	authedRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authedRouter, "/updateUser", s.userDomain.Update)
		router.POST(authedRouter, "/updateStatus", s.userDomain.UpdateStatus)

		// Follow API
		router.POST(authedRouter, "/follow", s.followDomain.Follow)
		router.POST(authedRouter, "/unfollow", s.followDomain.Unfollow)
		router.GET(authedRouter, "/getFollowers", s.followDomain.GetFollowers)
		router.GET(authedRouter, "/getFollowing", s.followDomain.GetFollowing)

		// Post API
		router.POST(authedRouter, "/createPost", s.postDomain.Create)
		router.GET(authedRouter, "/getFeed", s.postDomain.GetFeed)
		router.POST(authedRouter, "/toggleLike", s.postDomain.ToggleLike)
		router.POST(authedRouter, "/createComment", s.postDomain.CreateComment)

		// Messaging API
		router.POST(authedRouter, "/getOrCreateConversation", s.conversationDomain.GetOrCreate)
		router.GET(authedRouter, "/getConversations", s.conversationDomain.GetList)
		router.POST(authedRouter, "/sendMessage", s.conversationDomain.SendMessage)
		router.GET(authedRouter, "/getMessages", s.conversationDomain.GetMessages)
		router.POST(authedRouter, "/markRead", s.conversationDomain.MarkRead)
		router.GET(authedRouter, "/getUnreadCount", s.conversationDomain.GetUnreadCount)

		// Notification API
		router.GET(authedRouter, "/getNotifications", s.notificationDomain.GetList)
		router.POST(authedRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
		router.POST(authedRouter, "/markAllNotificationsRead", s.notificationDomain.MarkAllRead)
		router.GET(authedRouter, "/getUnreadNotificationCount", s.notificationDomain.GetUnreadCount)
		router.GET(authedRouter, "/serveNotification", s.wsDomain.Serve)

		// Gift API
		router.POST(authedRouter, "/sendGift", s.giftDomain.Send)
		router.GET(authedRouter, "/getReceivedGifts", s.giftDomain.GetReceived)

		// Investment API
		router.POST(authedRouter, "/createInvestment", s.investmentDomain.Create)
		router.GET(authedRouter, "/getMyInvestments", s.investmentDomain.GetMyList)
		router.POST(authedRouter, "/withdrawInvestment", s.investmentDomain.Withdraw)

		// Tournament API
		router.POST(authedRouter, "/joinTournament", s.tournamentDomain.Join)
		router.POST(authedRouter, "/leaveTournament", s.tournamentDomain.Leave)
		router.POST(authedRouter, "/updateScore", s.tournamentDomain.UpdateScore)

		// Plugin API
		router.POST(authedRouter, "/installPlugin", s.pluginDomain.Install)
		router.GET(authedRouter, "/getInstalledPlugins", s.pluginDomain.GetInstalled)

		// Wallet API
		router.GET(authedRouter, "/getMyTransactions", s.transactionDomain.GetMyList)

		// Chatbot API
		router.POST(authedRouter, "/askChatbot", s.chatbotDomain.Ask)
	}

	// Public API. Authentication is optional and only enriches the response.
	optionalVerifier := middleware.NewAuthVerifier().WithAccessToken().WithSession().WithOptional()
	publicRouter := s.router.Branch()
	publicRouter.Before(optionalVerifier.Middleware())
	{
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/searchUsers", s.userDomain.Search)
		router.GET(publicRouter, "/getTopUsers", s.userDomain.GetTop)
		router.GET(publicRouter, "/getPost", s.postDomain.Get)
		router.GET(publicRouter, "/getComments", s.postDomain.GetComments)
		router.GET(publicRouter, "/getGames", s.gameDomain.GetList)
		router.GET(publicRouter, "/getGame", s.gameDomain.Get)
		router.GET(publicRouter, "/getTournaments", s.tournamentDomain.GetList)
		router.GET(publicRouter, "/getTournament", s.tournamentDomain.Get)
		router.GET(publicRouter, "/getLeaderboard", s.tournamentDomain.GetLeaderboard)
		router.GET(publicRouter, "/getPlugins", s.pluginDomain.GetList)
		router.GET(publicRouter, "/getPlugin", s.pluginDomain.Get)
	}
}
