package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"monitor-swiezosci/internal/alerts"
	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/models"
	"monitor-swiezosci/internal/session"
)

// backendStub serves the overview bootstrap endpoint with a configurable score
// per unit and an error switch.
type backendStub struct {
	mu     sync.Mutex
	scores map[int64]int
	fail   atomic.Bool
}

func (b *backendStub) setScore(unitID int64, score int) {
	b.mu.Lock()
	b.scores[unitID] = score
	b.mu.Unlock()
}

func (b *backendStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.fail.Load() {
			json.NewEncoder(w).Encode(models.Envelope{Status: "error", Message: "no data"})
			return
		}

		raw := strings.TrimPrefix(r.URL.Path, "/api/freshness/overview/")
		unitID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "bad unit", http.StatusBadRequest)
			return
		}

		b.mu.Lock()
		score, ok := b.scores[unitID]
		b.mu.Unlock()
		if !ok {
			json.NewEncoder(w).Encode(models.Envelope{Status: "error", Message: "no data"})
			return
		}

		data, _ := json.Marshal(map[string]any{
			"unitId":               unitID,
			"productName":          fmt.Sprintf("Product %d", unitID),
			"latestFreshnessScore": score,
		})
		json.NewEncoder(w).Encode(models.Envelope{Status: "success", Data: data})
	})
}

func testWatcher(t *testing.T, scores map[int64]int, notifier *alerts.Notifier) (*Watcher, *backendStub, *feedServer) {
	t.Helper()

	backend := &backendStub{scores: scores}
	apiServer := httptest.NewServer(backend.handler())
	t.Cleanup(apiServer.Close)

	fs := newFeedServer(t)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := api.NewClient(apiServer.URL, store)

	watcher := NewWatcher(client, fs.wsURL(), notifier)
	ctx, cancel := context.WithCancel(context.Background())
	watcher.Bind(ctx)
	t.Cleanup(func() {
		cancel()
		watcher.CloseSubscription()
	})
	return watcher, backend, fs
}

func TestWatcher_SetUnitBootstrapsAndSubscribes(t *testing.T) {
	watcher, _, fs := testWatcher(t, map[int64]int{1: 72}, nil)

	watcher.SetUnit(1)

	require.Equal(t, int64(1), watcher.UnitID())
	snapshot := watcher.Snapshot()
	require.NotNil(t, snapshot)
	require.Equal(t, 72, *snapshot.LatestFreshnessScore)
	require.Equal(t, "Product 1", snapshot.ProductName)

	require.Eventually(t, func() bool { return fs.activeConns(1) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return watcher.FeedState() == StateOpen }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_FeedMessageReplacesSnapshot(t *testing.T) {
	watcher, _, fs := testWatcher(t, map[int64]int{1: 72}, nil)

	watcher.SetUnit(1)
	require.Eventually(t, func() bool { return fs.activeConns(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	fs.push(1, `{"unitId":1,"latestFreshnessScore":65,"currentPrice":9.75}`)

	require.Eventually(t, func() bool {
		snapshot := watcher.Snapshot()
		return snapshot != nil && snapshot.LatestFreshnessScore != nil && *snapshot.LatestFreshnessScore == 65
	}, 2*time.Second, 10*time.Millisecond)

	// Wholesale replacement: the feed message had no product name, so the
	// bootstrap's value is gone rather than merged.
	require.Empty(t, watcher.Snapshot().ProductName)
}

func TestWatcher_SwitchingUnitsKeepsSingleSubscription(t *testing.T) {
	watcher, _, fs := testWatcher(t, map[int64]int{1: 80, 2: 75, 3: 90}, nil)

	watcher.SetUnit(1)
	watcher.SetUnit(2)
	watcher.SetUnit(3)

	require.Equal(t, int64(3), watcher.UnitID())
	require.Eventually(t, func() bool { return fs.activeConns(3) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return fs.activeConns(1) == 0 && fs.activeConns(2) == 0
	}, 2*time.Second, 10*time.Millisecond)

	snapshot := watcher.Snapshot()
	require.NotNil(t, snapshot)
	require.Equal(t, int64(3), snapshot.UnitID)
}

func TestWatcher_StaleGenerationIgnored(t *testing.T) {
	watcher, _, _ := testWatcher(t, map[int64]int{1: 80, 2: 75}, nil)

	watcher.SetUnit(1)
	stale := watcher.generation.Load()
	watcher.SetUnit(2)

	score := 5
	watcher.apply(stale, 1, &models.FreshnessOverview{UnitID: 1, LatestFreshnessScore: &score})

	snapshot := watcher.Snapshot()
	require.Equal(t, int64(2), snapshot.UnitID)
	require.Equal(t, 75, *snapshot.LatestFreshnessScore)
}

func TestWatcher_BootstrapFailureKeepsLastSnapshot(t *testing.T) {
	watcher, backend, _ := testWatcher(t, map[int64]int{1: 72}, nil)

	watcher.SetUnit(1)
	require.NotNil(t, watcher.Snapshot())

	backend.fail.Store(true)
	watcher.bootstrap(context.Background(), watcher.generation.Load(), 1)

	snapshot := watcher.Snapshot()
	require.NotNil(t, snapshot, "failed refresh keeps the last known snapshot")
	require.Equal(t, 72, *snapshot.LatestFreshnessScore)
	require.Equal(t, "no data", watcher.LastError())
}

func TestWatcher_LowScoreAlertsOnce(t *testing.T) {
	collector := &alerts.Collector{}
	notifier := alerts.NewNotifier(alerts.DefaultThreshold, collector)
	watcher, _, fs := testWatcher(t, map[int64]int{7: 80}, notifier)

	watcher.SetUnit(7)
	require.Eventually(t, func() bool { return fs.activeConns(7) == 1 }, 2*time.Second, 10*time.Millisecond)

	fs.push(7, `{"unitId":7,"latestFreshnessScore":42,"productName":"Strawberries"}`)
	fs.push(7, `{"unitId":7,"latestFreshnessScore":38,"productName":"Strawberries"}`)

	require.Eventually(t, func() bool {
		snapshot := watcher.Snapshot()
		return snapshot != nil && snapshot.LatestFreshnessScore != nil && *snapshot.LatestFreshnessScore == 38
	}, 2*time.Second, 10*time.Millisecond)

	notifications := collector.All()
	require.Len(t, notifications, 1)
	require.Equal(t, int64(7), notifications[0].UnitID)
	require.Equal(t, 42, notifications[0].Score)
}

func TestWatcher_CloseSubscription(t *testing.T) {
	watcher, _, fs := testWatcher(t, map[int64]int{1: 80}, nil)

	watcher.SetUnit(1)
	require.Eventually(t, func() bool { return fs.activeConns(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	watcher.CloseSubscription()
	require.Eventually(t, func() bool { return fs.activeConns(1) == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, StateClosed, watcher.FeedState())
}
