package provider

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

// Scopes requested for calendar provisioning.
var Scopes = []string{gcal.CalendarEventsScope, gcal.CalendarScope}

var ErrNoClientCredentials = errors.New("google client credentials are not configured")

// ClientCredentials is the static OAuth client of the application.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether both halves of the client are present.
func (c ClientCredentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// OAuthConfig builds the oauth2 client configuration for Google.
func (c ClientCredentials) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// LoadClientCredentials parses a Google client secrets file ("web" or "installed").
func LoadClientCredentials(path string) (ClientCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClientCredentials{}, fmt.Errorf("read credentials file: %w", err)
	}
	return ParseClientCredentials(data)
}

// ParseClientCredentials parses Google client secrets JSON.
func ParseClientCredentials(data []byte) (ClientCredentials, error) {
	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return ClientCredentials{}, fmt.Errorf("parse credentials: %w", err)
	}

	creds := ClientCredentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}
	if !creds.Configured() {
		return ClientCredentials{}, ErrNoClientCredentials
	}
	return creds, nil
}
