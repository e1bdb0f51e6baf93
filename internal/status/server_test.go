package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/feed"
	"monitor-swiezosci/internal/models"
	"monitor-swiezosci/internal/session"
)

func testServer(t *testing.T, backend http.Handler) (*httptest.Server, *feed.Watcher) {
	t.Helper()

	apiServer := httptest.NewServer(backend)
	t.Cleanup(apiServer.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := api.NewClient(apiServer.URL, store)
	wsURL := "ws" + strings.TrimPrefix(apiServer.URL, "http")
	watcher := feed.NewWatcher(client, wsURL, nil)
	t.Cleanup(watcher.CloseSubscription)

	server := httptest.NewServer(NewServer(watcher).Router())
	t.Cleanup(server.Close)
	return server, watcher
}

func noBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unexpected call", http.StatusInternalServerError)
	})
}

func TestServer_Healthz(t *testing.T) {
	server, _ := testServer(t, noBackend())

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestServer_StateBeforeAnyUnit(t *testing.T) {
	server, _ := testServer(t, noBackend())

	resp, err := http.Get(server.URL + "/api/v1/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, int64(0), state.UnitID)
	require.Equal(t, "closed", state.FeedState)
	require.Nil(t, state.Snapshot)
}

func TestServer_SwitchUnit(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/freshness/overview/") {
			data, _ := json.Marshal(map[string]any{"unitId": 4, "latestFreshnessScore": 81})
			json.NewEncoder(w).Encode(models.Envelope{Status: "success", Data: data})
			return
		}
		// The feed dial lands here too; refusing the upgrade is fine, the
		// subscriber just retries in the background.
		http.Error(w, "no feed", http.StatusBadRequest)
	})
	server, watcher := testServer(t, backend)

	req, err := http.NewRequest("PUT", server.URL+"/api/v1/state/unit", strings.NewReader(`{"unitId":4}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, int64(4), watcher.UnitID())

	stateResp, err := http.Get(server.URL + "/api/v1/state")
	require.NoError(t, err)
	defer stateResp.Body.Close()

	var state StateResponse
	require.NoError(t, json.NewDecoder(stateResp.Body).Decode(&state))
	require.Equal(t, int64(4), state.UnitID)
	require.NotNil(t, state.Snapshot)
	require.Equal(t, 81, *state.Snapshot.LatestFreshnessScore)
}

func TestServer_SwitchUnitRejectsBadBody(t *testing.T) {
	server, _ := testServer(t, noBackend())

	for _, body := range []string{`not json`, `{"unitId":0}`, `{"unitId":-2}`} {
		req, err := http.NewRequest("PUT", server.URL+"/api/v1/state/unit", strings.NewReader(body))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
	}
}
