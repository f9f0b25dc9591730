package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:   entity.Base{ID: "user1"},
		Name:   "alice",
		Email:  "alice@example.com",
		Coins:  500,
		Status: entity.UserStatusOnline,
	}

	User2 = entity.User{
		Base:   entity.Base{ID: "user2"},
		Name:   "bob",
		Email:  "bob@example.com",
		Coins:  100,
		Status: entity.UserStatusOffline,
	}

	User3 = entity.User{
		Base:   entity.Base{ID: "user3"},
		Name:   "carol",
		Email:  "carol@example.com",
		Coins:  10,
		Status: entity.UserStatusOffline,
	}

	Post1 = entity.Post{
		Base:     entity.Base{ID: "post1"},
		AuthorID: User2.ID,
		Content:  "hello world",
	}

	Game1 = entity.Game{
		Base:        entity.Base{ID: "game1"},
		Name:        "Coin Rush",
		Category:    "arcade",
		MinEntryFee: 10,
	}

	Tournament1 = entity.Tournament{
		Base:       entity.Base{ID: "tournament1"},
		GameID:     Game1.ID,
		Name:       "Coin Rush Weekly",
		EntryFee:   50,
		MaxPlayers: 2,
		StartsAt:   time.Now().Add(-time.Hour),
		EndsAt:     time.Now().Add(time.Hour),
		Status:     entity.TournamentActive,
	}

	TournamentEnded = entity.Tournament{
		Base:       entity.Base{ID: "tournament2"},
		GameID:     Game1.ID,
		Name:       "Coin Rush Finals",
		EntryFee:   50,
		MaxPlayers: 16,
		StartsAt:   time.Now().Add(-48 * time.Hour),
		EndsAt:     time.Now().Add(-24 * time.Hour),
		Status:     entity.TournamentEnded,
	}

	Plugin1 = entity.Plugin{
		Base:     entity.Base{ID: "plugin1"},
		Name:     "Pomodoro Timer",
		Category: "productivity",
	}

	Plugin2 = entity.Plugin{
		Base:     entity.Base{ID: "plugin2"},
		Name:     "Chart Studio",
		Category: "finance",
		AuthorID: sql.NullString{String: "user2", Valid: true},
		Price:    30,
	}
)

// CreateFixtureDb populates the database in ctx with a small baseline data
// set. Tests mutate their own copies, so the exported fixtures above stay
// untouched.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertPosts(ctx)
	insertGames(ctx)
	insertPlugins(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range []entity.User{User1, User2, User3} {
		user := u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	post := Post1
	if err := postRepo.Create(ctx, &post); err != nil {
		panic(err)
	}
}

func insertGames(ctx context.Context) {
	gameRepo := repository.NewGameRepository()
	game := Game1
	if err := gameRepo.Create(ctx, &game); err != nil {
		panic(err)
	}

	tournamentRepo := repository.NewTournamentRepository()
	for _, t := range []entity.Tournament{Tournament1, TournamentEnded} {
		tournament := t
		if err := tournamentRepo.Create(ctx, &tournament); err != nil {
			panic(err)
		}
	}
}

func insertPlugins(ctx context.Context) {
	pluginRepo := repository.NewPluginRepository()
	for _, p := range []entity.Plugin{Plugin1, Plugin2} {
		plugin := p
		if err := pluginRepo.Create(ctx, &plugin); err != nil {
			panic(err)
		}
	}
}
