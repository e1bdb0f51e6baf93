package feed

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"monitor-swiezosci/internal/alerts"
	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/metrics"
	"monitor-swiezosci/internal/models"
)

// Watcher keeps a live view of one selected unit: a snapshot bootstrap over
// HTTP plus a feed subscription, with at most one subscription alive at any
// time. Switching units closes the old handle before the new one is live, and
// anything a stale handle still delivers is discarded by generation.
type Watcher struct {
	client   *api.Client
	wsURL    string
	notifier *alerts.Notifier

	// generation grows on every SetUnit; snapshots and errors tagged with an
	// older generation are stale and dropped.
	generation atomic.Int64

	mu        sync.RWMutex
	unitID    int64
	snapshot  *models.FreshnessOverview
	lastError string
	sub       *Subscriber

	ctx context.Context
}

func NewWatcher(client *api.Client, wsURL string, notifier *alerts.Notifier) *Watcher {
	return &Watcher{
		client:   client,
		wsURL:    wsURL,
		notifier: notifier,
		ctx:      context.Background(),
	}
}

// Bind ties new subscriptions to ctx. Call it before SetUnit so teardown of
// the whole watch propagates to the active subscription.
func (w *Watcher) Bind(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()
}

// Run refreshes the bootstrap snapshot on the poll interval until ctx is
// cancelled. The feed stays authoritative; polling is the fallback that
// survives a dead socket.
func (w *Watcher) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		<-ctx.Done()
		w.CloseSubscription()
		return
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.CloseSubscription()
			return
		case <-ticker.C:
			if id := w.UnitID(); id != 0 {
				w.bootstrap(ctx, w.generation.Load(), id)
			}
		}
	}
}

// SetUnit switches the watched unit: the previous subscription is closed
// first, then the snapshot is bootstrapped and a fresh subscription opened.
func (w *Watcher) SetUnit(unitID int64) {
	generation := w.generation.Add(1)

	w.mu.Lock()
	old := w.sub
	w.sub = nil
	w.unitID = unitID
	ctx := w.ctx
	w.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if unitID == 0 {
		return
	}

	w.bootstrap(ctx, generation, unitID)

	sub := NewSubscriber(w.wsURL, unitID, Handlers{
		OnSnapshot: func(id int64, overview *models.FreshnessOverview) {
			w.apply(generation, id, overview)
		},
		OnError: func(err error) {
			w.reportError(generation, err.Error())
		},
		OnState: func(state State) {
			log.Printf("[feed] unit %d: %s", unitID, state)
		},
	})

	w.mu.Lock()
	if w.generation.Load() != generation {
		// Lost a race with a newer SetUnit; this handle must not go live.
		w.mu.Unlock()
		sub.Close()
		return
	}
	w.sub = sub
	w.mu.Unlock()

	sub.Start(ctx)
}

// bootstrap fetches the one-shot snapshot. On failure the last known snapshot
// stays displayed rather than going blank.
func (w *Watcher) bootstrap(ctx context.Context, generation int64, unitID int64) {
	overview, err := w.client.Overview(ctx, unitID)
	if err != nil {
		w.reportError(generation, err.Error())
		return
	}
	w.apply(generation, unitID, overview)
}

// apply replaces the snapshot wholesale, last write wins. Stale generations
// and mismatched units are ignored.
func (w *Watcher) apply(generation int64, unitID int64, overview *models.FreshnessOverview) {
	if w.generation.Load() != generation {
		return
	}

	w.mu.Lock()
	if w.unitID != unitID {
		w.mu.Unlock()
		return
	}
	w.snapshot = overview
	w.lastError = ""
	w.mu.Unlock()

	if overview.LatestFreshnessScore != nil {
		metrics.SnapshotScore.WithLabelValues(strconv.FormatInt(unitID, 10)).Set(float64(*overview.LatestFreshnessScore))
	}
	if w.notifier != nil {
		w.notifier.Observe(unitID, overview)
	}
}

func (w *Watcher) reportError(generation int64, message string) {
	if w.generation.Load() != generation {
		return
	}
	w.mu.Lock()
	w.lastError = message
	w.mu.Unlock()
	log.Printf("[feed] %s", message)
}

// Snapshot returns the current overview, or nil before the first successful
// fetch or message.
func (w *Watcher) Snapshot() *models.FreshnessOverview {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.snapshot == nil {
		return nil
	}
	snapshot := *w.snapshot
	return &snapshot
}

func (w *Watcher) UnitID() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.unitID
}

func (w *Watcher) LastError() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// FeedState reports the current subscription's state, Closed when none.
func (w *Watcher) FeedState() State {
	w.mu.RLock()
	sub := w.sub
	w.mu.RUnlock()
	if sub == nil {
		return StateClosed
	}
	return sub.State()
}

// CloseSubscription tears down the active subscription, if any.
func (w *Watcher) CloseSubscription() {
	w.mu.Lock()
	sub := w.sub
	w.sub = nil
	w.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}
