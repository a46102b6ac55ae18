// internal/httpapi/server_test.go
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/catalog"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/game"
	"github.com/khaledhamdan079-tech/ticket-to-ride-be/internal/ws"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	hub := ws.NewHub(log)
	manager := game.NewManager(catalog.Default(), nil, nil, hub, log)
	manager.Seed = func() int64 { return 42 }
	manager.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(New(manager, hub, log).Routes())
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *errorBody     `json:"error"`
}

func post(t *testing.T, srv *httptest.Server, path string, body any) (int, apiResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func get(t *testing.T, srv *httptest.Server, path string) (int, apiResponse) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateJoinStartFlow(t *testing.T) {
	srv := newTestServer(t)

	status, created := post(t, srv, "/api/games", createGameRequest{Name: "friday", PlayerName: "Ann"})
	require.Equal(t, http.StatusOK, status)
	require.True(t, created.Success)
	gameID := created.Data["gameId"].(string)
	annID := created.Data["playerId"].(string)
	require.NotEmpty(t, gameID)
	require.NotEmpty(t, annID)

	gameBody := created.Data["game"].(map[string]any)
	assert.Equal(t, "waiting", gameBody["phase"])
	assert.Contains(t, gameBody, "availableRoutes")

	status, joined := post(t, srv, fmt.Sprintf("/api/games/%s/join", gameID), joinGameRequest{PlayerName: "Bo"})
	require.Equal(t, http.StatusOK, status)
	require.True(t, joined.Success)

	annUUID, err := uuid.Parse(annID)
	require.NoError(t, err)
	status, started := post(t, srv, fmt.Sprintf("/api/games/%s/start", gameID), startGameRequest{PlayerID: annUUID})
	require.Equal(t, http.StatusOK, status)
	require.True(t, started.Success)
	assert.Equal(t, "initialTickets", started.Data["game"].(map[string]any)["phase"])

	status, listed := get(t, srv, "/api/games")
	require.Equal(t, http.StatusOK, status)
	games := listed.Data["games"].([]any)
	assert.Len(t, games, 1)
}

func TestErrorEnvelopes(t *testing.T) {
	srv := newTestServer(t)

	status, resp := get(t, srv, "/api/games/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Equal(t, "notFound", resp.Error.Code)

	// A malformed id cannot name any session, so it reads as absent too.
	status, resp = get(t, srv, "/api/games/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "notFound", resp.Error.Code)

	status, created := post(t, srv, "/api/games", createGameRequest{Name: "g", PlayerName: "Ann"})
	require.Equal(t, http.StatusOK, status)
	gameID := created.Data["gameId"].(string)
	annUUID, err := uuid.Parse(created.Data["playerId"].(string))
	require.NoError(t, err)

	status, resp = post(t, srv, fmt.Sprintf("/api/games/%s/start", gameID), startGameRequest{PlayerID: annUUID})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "tooFewPlayers", resp.Error.Code)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/games", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/games", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
