package service

import (
	"context"
	"testing"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestUserService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	svc := NewUserService(users, zaptest.NewLogger(t))

	created, err := svc.RegisterUser(ctx, TelegramProfile{TelegramID: 100, Username: "ada", FirstName: "Ada"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// OAuth-поля выставляются внешним auth-сервисом
	stored, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	stored.GoogleAccessToken = "token"
	require.NoError(t, users.UpdateTokens(ctx, stored))

	updated, err := svc.RegisterUser(ctx, TelegramProfile{TelegramID: 100, Username: "ada_l", FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Ada Lovelace", updated.FullName())

	stored, err = users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ada_l", stored.Username)
	require.Equal(t, "token", stored.GoogleAccessToken)
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	svc := NewUserService(users, zaptest.NewLogger(t))

	_, err := svc.GetByTelegramID(ctx, 1)
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetByID(ctx, 1)
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, users.Create(ctx, &model.User{TelegramID: 5}))

	user, err := svc.GetByTelegramID(ctx, 5)
	require.NoError(t, err)

	user, err = svc.UpdateEmail(ctx, user.ID, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)

	stored, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", stored.Email)
}
