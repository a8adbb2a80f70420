package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/provider"
	"github.com/latafatguliyeva/Skill-sharing-platform/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeCalendar struct {
	mu         sync.Mutex
	tokens     []string // access tokens CreateEvent was called with
	inputs     []provider.EventInput
	failTokens map[string]error
	uri        string
	connErr    error
	listErr    error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		failTokens: make(map[string]error),
		uri:        "https://meet.google.com/abc-defg-hij",
	}
}

func (c *fakeCalendar) CreateEvent(_ context.Context, accessToken string, in provider.EventInput) (*provider.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tokens = append(c.tokens, accessToken)
	c.inputs = append(c.inputs, in)
	if err := c.failTokens[accessToken]; err != nil {
		return nil, err
	}

	event := &provider.Event{ID: "evt-1", ConferenceID: "conf-1"}
	if c.uri != "" {
		event.EntryPoints = []provider.EntryPoint{{Type: "video", URI: c.uri}}
	}
	return event, nil
}

func (c *fakeCalendar) ListUpcoming(_ context.Context, _ string, _ int64) (int, error) {
	if c.listErr != nil {
		return 0, c.listErr
	}
	return 1, nil
}

func (c *fakeCalendar) CheckConnectivity(_ context.Context) error {
	return c.connErr
}

func (c *fakeCalendar) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tokens...)
}

type fakeRefresher struct {
	calls atomic.Int32
	token string
	ttl   time.Duration
	err   error
	delay time.Duration
}

func (r *fakeRefresher) Refresh(_ context.Context, refreshToken string) (*provider.RefreshedToken, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.err != nil {
		return nil, r.err
	}
	if refreshToken == "" {
		return nil, errors.New("empty refresh token")
	}
	return &provider.RefreshedToken{AccessToken: r.token, Expiry: testNow.Add(r.ttl)}, nil
}

type testEnv struct {
	users       *memory.UserStore
	requests    *memory.SessionRequestStore
	sessions    *memory.SessionStore
	calendar    *fakeCalendar
	refresher   *fakeRefresher
	resolver    *CredentialResolver
	provisioner *MeetingProvisioner
	sessionSvc  *SessionService
	requestSvc  *SessionRequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zaptest.NewLogger(t)
	env := &testEnv{
		users:     memory.NewUserStore(),
		requests:  memory.NewSessionRequestStore(),
		sessions:  memory.NewSessionStore(),
		calendar:  newFakeCalendar(),
		refresher: &fakeRefresher{token: "refreshed-token", ttl: time.Hour},
	}

	env.resolver = NewCredentialResolver(env.users, env.refresher, logger)
	env.resolver.now = func() time.Time { return testNow }

	env.provisioner = NewMeetingProvisioner(env.calendar, env.resolver, MeetingProvisioningOptions{
		Credentials: provider.ClientCredentials{ClientID: "client-id", ClientSecret: "client-secret"},
	}, logger)
	env.provisioner.now = func() time.Time { return testNow }

	env.sessionSvc = NewSessionService(env.sessions, env.users, env.provisioner, logger)
	env.requestSvc = NewSessionRequestService(env.requests, env.sessionSvc, logger)

	return env
}

func (e *testEnv) createUser(t *testing.T, user *model.User) *model.User {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func millis(t time.Time) *int64 {
	return model.ExpiryMillis(t)
}
