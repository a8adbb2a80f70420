package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRefresherRefresh(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "refresh-abc", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	refresher := NewTokenRefresher(ClientCredentials{ClientID: "id", ClientSecret: "secret"}, srv.URL+"/token", nil, 5*time.Second)

	before := time.Now()
	tok, err := refresher.Refresh(context.Background(), "refresh-abc")
	require.NoError(t, err)
	require.Equal(t, "fresh-token", tok.AccessToken)
	require.True(t, tok.Expiry.After(before.Add(50*time.Minute)))
	require.EqualValues(t, 1, calls.Load())
}

func TestTokenRefresherProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	refresher := NewTokenRefresher(ClientCredentials{ClientID: "id", ClientSecret: "secret"}, srv.URL+"/token", nil, 5*time.Second)

	_, err := refresher.Refresh(context.Background(), "revoked")
	require.Error(t, err)
}

func TestTokenRefresherWithoutClientCredentials(t *testing.T) {
	refresher := NewTokenRefresher(ClientCredentials{}, "", nil, time.Second)

	_, err := refresher.Refresh(context.Background(), "refresh-abc")
	require.ErrorIs(t, err, ErrNoClientCredentials)
}
