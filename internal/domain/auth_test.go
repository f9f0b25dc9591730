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

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewAuthDomain(repository.NewUserRepository())
	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "dave", resp.User.Name)
	require.Equal(t, int64(entity.DefaultCoins), resp.User.Coins)

	// The access token resolves back to the new account.
	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, info.ID)

	// The password is stored hashed.
	record, err := repository.NewUserRepository().GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotEmpty(t, record.HashedPassword)
	require.NotEqual(t, "super-secret", record.HashedPassword)
}

func Test_authDomain_Register_duplicated(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewAuthDomain(repository.NewUserRepository())

	var errx errorx.Error
	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "someone",
		Email:    testutil.User1.Email,
		Password: "pw",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:     testutil.User1.Name,
		Email:    "someone@example.com",
		Password: "pw",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = domain.Register(ctx, &model.RegisterRequest{Name: "x"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewAuthDomain(repository.NewUserRepository())
	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "erin",
		Email:    "erin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "erin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, resp.User.ID)
	require.NotEmpty(t, resp.AccessToken)

	// A wrong password and an unknown email fail the same way.
	var errx errorx.Error
	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "erin@example.com",
		Password: "wrong",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
