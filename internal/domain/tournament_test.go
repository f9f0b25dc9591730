package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/superapp-lab/backend/internal/entity"
	"github.com/superapp-lab/backend/internal/model"
	"github.com/superapp-lab/backend/internal/repository"
	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/testutil"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

func newTournamentDomainForTest() TournamentDomain {
	return NewTournamentDomain(
		repository.NewTournamentRepository(),
		repository.NewUserRepository(),
		repository.NewTransactionRepository(),
		NewNotifier(repository.NewNotificationRepository(), nil),
	)
}

func Test_tournamentDomain_Join(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-testutil.Tournament1.EntryFee, user.Coins)

	tournamentRepo := repository.NewTournamentRepository()
	tournament, err := tournamentRepo.GetByID(ctx, testutil.Tournament1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Tournament1.EntryFee, tournament.PrizePool)
	require.Equal(t, 1, tournament.CurrentPlayers)

	entry, err := tournamentRepo.GetEntry(ctx, testutil.Tournament1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), entry.Score)

	lines, err := repository.NewTransactionRepository().GetListByUserID(ctx, testutil.User1.ID, 10)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, entity.TransactionTournamentEntry, lines[0].Type)
	require.Equal(t, -testutil.Tournament1.EntryFee, lines[0].Amount)

	// The join confirmation is the only notification a user gets about their
	// own action.
	unread, err := repository.NewNotificationRepository().CountUnread(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	var errx errorx.Error
	_, err = domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyJoined, errx.Code)
}

func Test_tournamentDomain_Join_full(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	_, err = domain.Join(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.JoinTournamentRequest{TournamentID: testutil.Tournament1.ID},
	)
	require.NoError(t, err)

	// MaxPlayers of the fixture is 2, so the third join must bounce without
	// touching the third user's coins.
	var errx errorx.Error
	_, err = domain.Join(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.JoinTournamentRequest{TournamentID: testutil.Tournament1.ID},
	)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TournamentFull, errx.Code)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.Coins, user.Coins)
}

func Test_tournamentDomain_Join_insufficientFunds(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	var errx errorx.Error
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	tournament, err := repository.NewTournamentRepository().GetByID(ctx, testutil.Tournament1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), tournament.PrizePool)
	require.Equal(t, 0, tournament.CurrentPlayers)
}

func Test_tournamentDomain_Join_ended(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	var errx errorx.Error
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.TournamentEnded.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_tournamentDomain_Leave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	_, err = domain.Leave(ctx, &model.LeaveTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	// Leaving frees the seat but the entry fee stays in the prize pool.
	tournament, err := repository.NewTournamentRepository().GetByID(ctx, testutil.Tournament1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, tournament.CurrentPlayers)
	require.Equal(t, testutil.Tournament1.EntryFee, tournament.PrizePool)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Coins-testutil.Tournament1.EntryFee, user.Coins)

	var errx errorx.Error
	_, err = domain.Leave(ctx, &model.LeaveTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_tournamentDomain_UpdateScore_and_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.Join(user2Ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	_, err = domain.UpdateScore(ctx, &model.UpdateScoreRequest{
		TournamentID: testutil.Tournament1.ID, Score: 120,
	})
	require.NoError(t, err)

	_, err = domain.UpdateScore(user2Ctx, &model.UpdateScoreRequest{
		TournamentID: testutil.Tournament1.ID, Score: 340,
	})
	require.NoError(t, err)

	// Resubmitting the current score is a valid no-op, not a missing entry.
	_, err = domain.UpdateScore(user2Ctx, &model.UpdateScoreRequest{
		TournamentID: testutil.Tournament1.ID, Score: 340,
	})
	require.NoError(t, err)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, testutil.User2.ID, resp.Entries[0].User.ID)
	require.Equal(t, int64(340), resp.Entries[0].Score)
	require.Equal(t, testutil.User1.ID, resp.Entries[1].User.ID)

	var errx errorx.Error
	_, err = domain.UpdateScore(ctx, &model.UpdateScoreRequest{
		TournamentID: testutil.Tournament1.ID, Score: -1,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.UpdateScore(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.UpdateScoreRequest{TournamentID: testutil.Tournament1.ID, Score: 10},
	)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_tournamentDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTournamentDomainForTest()
	_, err := domain.Join(ctx, &model.JoinTournamentRequest{
		TournamentID: testutil.Tournament1.ID,
	})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetTournamentsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tournaments, 2)
	for _, tournament := range resp.Tournaments {
		if tournament.ID == testutil.Tournament1.ID {
			require.True(t, tournament.Joined)
		} else {
			require.False(t, tournament.Joined)
		}
	}

	activeOnly, err := domain.GetList(ctx, &model.GetTournamentsRequest{Status: "active"})
	require.NoError(t, err)
	require.Len(t, activeOnly.Tournaments, 1)
	require.Equal(t, testutil.Tournament1.ID, activeOnly.Tournaments[0].ID)

	var errx errorx.Error
	_, err = domain.GetList(ctx, &model.GetTournamentsRequest{Status: "running"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
