package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	expiry := int64(1000)
	user := &model.User{TelegramID: 42, Username: "ann", GoogleAccessToken: "tok", GoogleTokenExpiry: &expiry}
	require.NoError(t, store.Create(ctx, user))
	require.NotZero(t, user.ID)

	// мутация исходного объекта не должна менять хранилище
	*user.GoogleTokenExpiry = 5
	user.Username = "changed"

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ann", got.Username)
	require.EqualValues(t, 1000, *got.GoogleTokenExpiry)

	missing, err := store.GetByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, missing)

	byTelegram, err := store.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, user.ID, byTelegram.ID)

	require.Error(t, store.Create(ctx, &model.User{TelegramID: 42}))
}

func TestUserStoreUpdateKeepsTokens(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	user := &model.User{Username: "ann", GoogleAccessToken: "tok"}
	require.NoError(t, store.Create(ctx, user))

	require.NoError(t, store.Update(ctx, &model.User{ID: user.ID, Username: "ann2", Email: "ann@example.com"}))

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ann2", got.Username)
	require.Equal(t, "tok", got.GoogleAccessToken)

	got.GoogleAccessToken = "new"
	require.NoError(t, store.UpdateTokens(ctx, got))

	got, err = store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "new", got.GoogleAccessToken)
	require.Equal(t, "ann@example.com", got.Email)
}

func TestSessionRequestStoreCompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionRequestStore()

	req := &model.SessionRequest{LearnerID: 1, TeacherID: 2, Status: model.RequestStatusPending}
	require.NoError(t, store.Create(ctx, req))

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.UpdateStatus(ctx, req.ID, model.RequestStatusPending, model.RequestStatusApproved, "ok")
			require.NoError(t, err)
			if ok {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, won)

	got, err := store.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusApproved, got.Status)
	require.Equal(t, "ok", got.ResponseMessage)
}

func TestSessionRequestStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewSessionRequestStore()

	for _, r := range []*model.SessionRequest{
		{LearnerID: 1, TeacherID: 2, Status: model.RequestStatusPending},
		{LearnerID: 1, TeacherID: 3, Status: model.RequestStatusApproved},
		{LearnerID: 4, TeacherID: 2, Status: model.RequestStatusPending},
	} {
		require.NoError(t, store.Create(ctx, r))
	}

	all, err := store.List(ctx, model.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byTeacher, err := store.List(ctx, model.RequestFilter{TeacherID: 2, Status: model.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, byTeacher, 2)

	byLearner, err := store.List(ctx, model.RequestFilter{LearnerID: 1, Status: model.RequestStatusApproved})
	require.NoError(t, err)
	require.Len(t, byLearner, 1)
	require.EqualValues(t, 3, byLearner[0].TeacherID)
}

func TestSessionStoreListForUser(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	base := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

	sessions := []*model.Session{
		{TeacherID: 1, LearnerID: 2, ScheduledTime: base.Add(2 * time.Hour), Status: model.SessionStatusScheduled},
		{TeacherID: 3, LearnerID: 1, ScheduledTime: base, Status: model.SessionStatusConfirmed},
		{TeacherID: 1, LearnerID: 4, ScheduledTime: base.Add(time.Hour), Status: model.SessionStatusCompleted},
		{TeacherID: 5, LearnerID: 6, ScheduledTime: base, Status: model.SessionStatusScheduled},
	}
	for _, s := range sessions {
		require.NoError(t, store.Create(ctx, s))
	}

	got, err := store.ListForUser(ctx, 1, model.UpcomingStatuses)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, sessions[1].ID, got[0].ID)
	require.Equal(t, sessions[0].ID, got[1].ID)

	require.NoError(t, store.Delete(ctx, sessions[0].ID))
	require.Error(t, store.Delete(ctx, sessions[0].ID))
}
