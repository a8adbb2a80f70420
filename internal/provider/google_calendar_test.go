package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGoogleCalendarCreateEvent(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/calendars/primary/events"), r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))
		require.Equal(t, "all", r.URL.Query().Get("sendUpdates"))
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "evt-1",
			"conferenceData": {
				"conferenceId": "abc-defg-hij",
				"entryPoints": [
					{"entryPointType": "phone", "uri": "tel:+1-555-0100"},
					{"entryPointType": "video", "uri": "https://meet.google.com/abc-defg-hij"}
				]
			}
		}`))
	}))
	defer srv.Close()

	cal := NewGoogleCalendar(GoogleCalendarOptions{Endpoint: srv.URL + "/", Timeout: 5 * time.Second})

	start := time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC)
	ev, err := cal.CreateEvent(context.Background(), "user-token", EventInput{
		Summary: "Skill Sharing: 5",
		Start:   start,
		End:     start.Add(time.Hour),
		Attendees: []Attendee{
			{Email: "teacher@example.com", DisplayName: "Teacher", Organizer: true},
			{Email: "learner@example.com", DisplayName: "Learner"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "evt-1", ev.ID)
	require.Equal(t, "abc-defg-hij", ev.ConferenceID)
	require.Equal(t, "https://meet.google.com/abc-defg-hij", ev.VideoURI())

	conf := captured["conferenceData"].(map[string]any)
	req := conf["createRequest"].(map[string]any)
	require.NotEmpty(t, req["requestId"])
	require.Equal(t, "hangoutsMeet", req["conferenceSolutionKey"].(map[string]any)["type"])
	require.Len(t, captured["attendees"], 2)
	require.Equal(t, "2026-10-20T15:00:00Z", captured["start"].(map[string]any)["dateTime"])
}

func TestGoogleCalendarCreateEventProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))
	defer srv.Close()

	cal := NewGoogleCalendar(GoogleCalendarOptions{Endpoint: srv.URL + "/", Timeout: 5 * time.Second})

	_, err := cal.CreateEvent(context.Background(), "stale", EventInput{Start: time.Now(), End: time.Now().Add(time.Hour)})
	require.Error(t, err)
}

func TestGoogleCalendarListUpcoming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "1", r.URL.Query().Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"evt-9"}]}`))
	}))
	defer srv.Close()

	cal := NewGoogleCalendar(GoogleCalendarOptions{Endpoint: srv.URL + "/", Timeout: 5 * time.Second})

	n, err := cal.ListUpcoming(context.Background(), "user-token", 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestGoogleCalendarCheckConnectivity(t *testing.T) {
	cal := NewGoogleCalendar(GoogleCalendarOptions{ApplicationName: "skillshare-test"})
	require.NoError(t, cal.CheckConnectivity(context.Background()))
}
