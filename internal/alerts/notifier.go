package alerts

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"monitor-swiezosci/internal/metrics"
	"monitor-swiezosci/internal/models"
)

// DefaultThreshold matches the backend's default alert config.
const DefaultThreshold = 60

// Notification is one user-facing low-freshness warning.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	UnitID      int64     `json:"unitId"`
	Score       int       `json:"score"`
	ProductName string    `json:"productName,omitempty"`
	Message     string    `json:"message"`
	At          time.Time `json:"at"`
}

// Sink receives notifications. Implementations must tolerate being called from
// the feed's reader goroutine.
type Sink interface {
	Notify(Notification)
}

// Notifier watches snapshots and emits at most one notification per unit for
// its lifetime. A unit that recovers and drops again stays silent; a fresh
// Notifier (new watch) starts clean.
type Notifier struct {
	threshold int
	sinks     []Sink

	mu       sync.Mutex
	notified map[int64]bool
}

func NewNotifier(threshold int, sinks ...Sink) *Notifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Notifier{
		threshold: threshold,
		sinks:     sinks,
		notified:  make(map[int64]bool),
	}
}

// Observe inspects a snapshot and fires the sinks when the unit's score first
// drops below the threshold. Snapshots without a score never alert.
func (n *Notifier) Observe(unitID int64, overview *models.FreshnessOverview) {
	if overview == nil || overview.LatestFreshnessScore == nil {
		return
	}
	score := *overview.LatestFreshnessScore
	if score >= n.threshold {
		return
	}

	n.mu.Lock()
	if n.notified[unitID] {
		n.mu.Unlock()
		return
	}
	n.notified[unitID] = true
	n.mu.Unlock()

	product := overview.ProductName
	if product == "" {
		product = "Unit"
	}

	notification := Notification{
		ID:          uuid.New(),
		UnitID:      unitID,
		Score:       score,
		ProductName: overview.ProductName,
		Message:     fmt.Sprintf("Alert: Low freshness (%d%%) for %s!", score, product),
		At:          time.Now(),
	}
	metrics.AlertsEmitted.Inc()
	for _, sink := range n.sinks {
		sink.Notify(notification)
	}
}

// LogSink prints notifications to the process log.
type LogSink struct{}

func (LogSink) Notify(n Notification) {
	log.Printf("[alert] %s (unit %d)", n.Message, n.UnitID)
}

// Collector keeps notifications in memory, mostly for tests and the status
// endpoint.
type Collector struct {
	mu            sync.Mutex
	notifications []Notification
}

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
}

func (c *Collector) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}
