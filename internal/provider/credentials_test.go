package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const clientSecretsJSON = `{
  "web": {
    "client_id": "client-123.apps.googleusercontent.com",
    "client_secret": "shh",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost:8080/oauth/callback"]
  }
}`

func TestLoadClientCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(clientSecretsJSON), 0o600))

	creds, err := LoadClientCredentials(path)
	require.NoError(t, err)
	require.Equal(t, "client-123.apps.googleusercontent.com", creds.ClientID)
	require.Equal(t, "shh", creds.ClientSecret)
	require.True(t, creds.Configured())
}

func TestLoadClientCredentialsMissingFile(t *testing.T) {
	_, err := LoadClientCredentials(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseClientCredentialsRejectsGarbage(t *testing.T) {
	_, err := ParseClientCredentials([]byte(`{"other": {}}`))
	require.Error(t, err)

	_, err = ParseClientCredentials([]byte(`not json`))
	require.Error(t, err)
}

func TestClientCredentialsConfigured(t *testing.T) {
	require.False(t, ClientCredentials{}.Configured())
	require.False(t, ClientCredentials{ClientID: "id"}.Configured())
	require.True(t, ClientCredentials{ClientID: "id", ClientSecret: "secret"}.Configured())
}
