// Package provider talks to the conferencing provider (Google Calendar and
// Google Meet) on behalf of users holding delegated OAuth credentials.
package provider

import (
	"strings"
	"time"
)

// MeetDomain marks a URL as a Google Meet link.
const MeetDomain = "meet.google.com"

// MeetBaseURL is the public URL scheme of Meet links.
const MeetBaseURL = "https://" + MeetDomain + "/"

// Attendee is an event participant.
type Attendee struct {
	Email       string
	DisplayName string
	Organizer   bool
}

// EventInput describes a calendar event to create with a conference attached.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []Attendee
}

// EntryPoint is one way of joining a conference.
type EntryPoint struct {
	Type string
	URI  string
}

// Event is the part of a created calendar event the provisioner cares about.
type Event struct {
	ID           string
	ConferenceID string
	EntryPoints  []EntryPoint
}

// VideoURI returns the URI of the first video entry point, or "".
func (e *Event) VideoURI() string {
	if e == nil {
		return ""
	}
	for _, ep := range e.EntryPoints {
		if ep.Type == "video" {
			return ep.URI
		}
	}
	return ""
}

// IsMeetURL reports whether uri points at a Meet conference.
func IsMeetURL(uri string) bool {
	return strings.Contains(uri, MeetDomain+"/")
}

// MeetingCode returns the trailing path segment of a Meet URL.
func MeetingCode(uri string) string {
	uri = strings.TrimRight(uri, "/")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// RefreshedToken is the result of a refresh-token exchange.
type RefreshedToken struct {
	AccessToken string
	Expiry      time.Time
}
