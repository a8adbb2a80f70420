package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	primaryCalendar      = "primary"
	conferenceSolutionID = "hangoutsMeet"
)

// GoogleCalendarOptions configures GoogleCalendar.
type GoogleCalendarOptions struct {
	ApplicationName string
	// Endpoint overrides the Calendar API base URL (tests).
	Endpoint string
	Timeout  time.Duration
	Limiter  *rate.Limiter
}

// GoogleCalendar creates calendar events with Meet conferences using a
// user's access token.
type GoogleCalendar struct {
	appName  string
	endpoint string
	timeout  time.Duration
	limiter  *rate.Limiter
}

// NewGoogleCalendar creates the Calendar adapter.
func NewGoogleCalendar(opts GoogleCalendarOptions) *GoogleCalendar {
	return &GoogleCalendar{
		appName:  opts.ApplicationName,
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		limiter:  opts.Limiter,
	}
}

func (g *GoogleCalendar) service(ctx context.Context, opts ...option.ClientOption) (*gcal.Service, error) {
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}
	if g.appName != "" {
		opts = append(opts, option.WithUserAgent(g.appName))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}

func (g *GoogleCalendar) userService(ctx context.Context, accessToken string) (*gcal.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return g.service(ctx, option.WithTokenSource(ts))
}

// CreateEvent inserts an event into the token owner's primary calendar and
// asks the provider to attach a Meet conference to it.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, accessToken string, in EventInput) (*Event, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	if err := wait(ctx, g.limiter); err != nil {
		return nil, err
	}

	svc, err := g.userService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert(primaryCalendar, buildEvent(in)).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}

	return convertEvent(created), nil
}

// ListUpcoming lists at most max upcoming events of the token owner; used to
// verify that the token grants calendar access.
func (g *GoogleCalendar) ListUpcoming(ctx context.Context, accessToken string, max int64) (int, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	if err := wait(ctx, g.limiter); err != nil {
		return 0, err
	}

	svc, err := g.userService(ctx, accessToken)
	if err != nil {
		return 0, err
	}

	events, err := svc.Events.List(primaryCalendar).
		MaxResults(max).
		TimeMin(time.Now().UTC().Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("list calendar events: %w", err)
	}

	return len(events.Items), nil
}

// CheckConnectivity verifies that the Calendar client can be constructed.
func (g *GoogleCalendar) CheckConnectivity(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.service(ctx, option.WithoutAuthentication())
	return err
}

func buildEvent(in EventInput) *gcal.Event {
	attendees := make([]*gcal.EventAttendee, 0, len(in.Attendees))
	for _, a := range in.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
			Organizer:   a.Organizer,
		})
	}

	return &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &gcal.EventDateTime{
			DateTime: in.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: in.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: attendees,
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: conferenceSolutionID,
				},
			},
		},
	}
}

func convertEvent(ev *gcal.Event) *Event {
	out := &Event{ID: ev.Id}
	if ev.ConferenceData == nil {
		return out
	}

	out.ConferenceID = ev.ConferenceData.ConferenceId
	for _, ep := range ev.ConferenceData.EntryPoints {
		if ep == nil {
			continue
		}
		out.EntryPoints = append(out.EntryPoints, EntryPoint{Type: ep.EntryPointType, URI: ep.Uri})
	}
	return out
}
