package service

import (
	"context"
	"testing"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/stretchr/testify/require"
)

func newSession(teacherID, learnerID int64, sessionType model.SessionType, at time.Time) *model.Session {
	return &model.Session{
		TeacherID:     teacherID,
		LearnerID:     learnerID,
		SkillID:       5,
		ScheduledTime: at,
		Duration:      60,
		SessionType:   sessionType,
		Location:      "Library, room 3",
	}
}

func TestSessionService_CreateInPersonHasNoMeeting(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, &model.User{GoogleAccessToken: "teacher-token"})
	learner := env.createUser(t, &model.User{})

	input := newSession(teacher.ID, learner.ID, model.SessionTypeInPerson, testNow)
	input.MeetingURL = "https://meet.google.com/should-be-dropped"

	session, err := env.sessionSvc.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotZero(t, session.ID)
	require.Equal(t, model.SessionStatusScheduled, session.Status)
	require.Empty(t, session.MeetingURL)
	require.Empty(t, session.MeetingID)
	require.Empty(t, session.MeetingTier)
	require.Empty(t, env.calendar.calls())
}

func TestSessionService_CreateVirtualProvisionsMeeting(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, &model.User{})
	learner := env.createUser(t, &model.User{})

	session, err := env.sessionSvc.Create(context.Background(), newSession(teacher.ID, learner.ID, model.SessionTypeVirtual, testNow))
	require.NoError(t, err)
	require.NotEmpty(t, session.MeetingURL)
	require.NotEmpty(t, session.MeetingID)
	require.Equal(t, model.MeetingTierSynthetic, session.MeetingTier)
	require.False(t, session.IsRealMeeting())

	stored, err := env.sessionSvc.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, session.MeetingURL, stored.MeetingURL)
	require.Equal(t, model.MeetingTierSynthetic, stored.MeetingTier)
}

func TestSessionService_CreateVirtualRealMeeting(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, &model.User{GoogleAccessToken: "teacher-token"})
	learner := env.createUser(t, &model.User{})

	session, err := env.sessionSvc.Create(context.Background(), newSession(teacher.ID, learner.ID, model.SessionTypeVirtual, testNow))
	require.NoError(t, err)
	require.True(t, session.IsRealMeeting())
	require.Equal(t, "https://meet.google.com/abc-defg-hij", session.MeetingURL)
}

func TestSessionService_CreateVirtualWithMissingUser(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, &model.User{})

	_, err := env.sessionSvc.Create(context.Background(), newSession(teacher.ID, 999, model.SessionTypeVirtual, testNow))
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	all, err := env.sessionSvc.GetAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSessionService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	bad := newSession(1, 2, model.SessionTypeVirtual, testNow)
	bad.Duration = 0
	_, err := env.sessionSvc.Create(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidRequest)

	bad = newSession(1, 2, "hologram", testNow)
	_, err = env.sessionSvc.Create(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSessionService_GetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sessionSvc.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_UpdateStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.sessionSvc.Create(ctx, newSession(1, 2, model.SessionTypeInPerson, testNow))
	require.NoError(t, err)

	session, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, model.SessionStatusConfirmed, session.Status)

	// назад в scheduled нельзя
	_, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusScheduled)
	require.ErrorIs(t, err, ErrInvalidState)

	session, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusInProgress)
	require.NoError(t, err)
	session, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, model.SessionStatusCompleted, session.Status)

	_, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = env.sessionSvc.UpdateStatus(ctx, session.ID, "paused")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.sessionSvc.UpdateStatus(ctx, 999, model.SessionStatusCancelled)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_UpdateToVirtualProvisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.createUser(t, &model.User{})
	learner := env.createUser(t, &model.User{})

	session, err := env.sessionSvc.Create(ctx, newSession(teacher.ID, learner.ID, model.SessionTypeInPerson, testNow))
	require.NoError(t, err)
	require.False(t, session.HasMeeting())

	newTime := testNow.Add(2 * time.Hour)
	duration := 90
	session, err = env.sessionSvc.Update(ctx, session.ID, model.SessionUpdate{
		ScheduledTime: &newTime,
		Duration:      &duration,
		SessionType:   model.SessionTypeVirtual,
	})
	require.NoError(t, err)
	require.True(t, session.HasMeeting())
	require.Equal(t, newTime, session.ScheduledTime)
	require.Equal(t, 90, session.Duration)

	meetingURL := session.MeetingURL

	// повторное обновление виртуальной сессии не пересоздаёт встречу
	session, err = env.sessionSvc.Update(ctx, session.ID, model.SessionUpdate{Status: model.SessionStatusConfirmed})
	require.NoError(t, err)
	require.Equal(t, meetingURL, session.MeetingURL)
	require.Equal(t, model.SessionStatusConfirmed, session.Status)

	session, err = env.sessionSvc.Update(ctx, session.ID, model.SessionUpdate{SessionType: model.SessionTypeInPerson, Location: "Cafe"})
	require.NoError(t, err)
	require.False(t, session.HasMeeting())
	require.Empty(t, session.MeetingTier)
	require.Equal(t, "Cafe", session.Location)
}

func TestSessionService_UpdateRejectsInvalidChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.sessionSvc.Create(ctx, newSession(1, 2, model.SessionTypeInPerson, testNow))
	require.NoError(t, err)

	zero := 0
	_, err = env.sessionSvc.Update(ctx, session.ID, model.SessionUpdate{Duration: &zero})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.sessionSvc.UpdateStatus(ctx, session.ID, model.SessionStatusCancelled)
	require.NoError(t, err)
	_, err = env.sessionSvc.Update(ctx, session.ID, model.SessionUpdate{Status: model.SessionStatusInProgress})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestSessionService_GetUpcomingForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	late, err := env.sessionSvc.Create(ctx, newSession(1, 2, model.SessionTypeInPerson, testNow.Add(48*time.Hour)))
	require.NoError(t, err)
	early, err := env.sessionSvc.Create(ctx, newSession(3, 1, model.SessionTypeInPerson, testNow.Add(time.Hour)))
	require.NoError(t, err)
	done, err := env.sessionSvc.Create(ctx, newSession(1, 4, model.SessionTypeInPerson, testNow.Add(2*time.Hour)))
	require.NoError(t, err)
	_, err = env.sessionSvc.UpdateStatus(ctx, done.ID, model.SessionStatusCancelled)
	require.NoError(t, err)
	_, err = env.sessionSvc.Create(ctx, newSession(5, 6, model.SessionTypeInPerson, testNow))
	require.NoError(t, err)

	upcoming, err := env.sessionSvc.GetUpcomingForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	require.Equal(t, early.ID, upcoming[0].ID)
	require.Equal(t, late.ID, upcoming[1].ID)

	byTeacher, err := env.sessionSvc.GetByTeacher(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byTeacher, 2)

	cancelled, err := env.sessionSvc.GetByStatus(ctx, model.SessionStatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)

	byLearner, err := env.sessionSvc.GetByLearner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byLearner, 1)
}

func TestSessionService_CreateBulkUsesBasicMeetings(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, &model.User{GoogleAccessToken: "teacher-token"})

	created, err := env.sessionSvc.CreateBulk(context.Background(), []*model.Session{
		newSession(teacher.ID, 2, model.SessionTypeVirtual, testNow),
		newSession(teacher.ID, 3, model.SessionTypeInPerson, testNow.Add(time.Hour)),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	require.Equal(t, model.MeetingTierBasic, created[0].MeetingTier)
	require.Regexp(t, basicIDPattern, created[0].MeetingID)
	require.False(t, created[1].HasMeeting())
	require.Empty(t, env.calendar.calls())
}
