package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"monitor-swiezosci/internal/metrics"
	"monitor-swiezosci/internal/models"
)

// ReconnectDelay is the fixed retry interval between connection attempts.
const ReconnectDelay = 5 * time.Second

// Handlers are the subscriber's callbacks. They are invoked from a single
// goroutine per subscriber, never concurrently with each other.
type Handlers struct {
	OnSnapshot func(unitID int64, overview *models.FreshnessOverview)
	OnError    func(err error)
	OnState    func(state State)
}

// Subscriber owns exactly one socket/topic pairing for one unit. It is
// single-use: create, Start, Close. Switching units means closing this
// subscriber and creating a new one. Handles are replaced, never retargeted.
type Subscriber struct {
	wsBaseURL      string
	unitID         int64
	dialer         *websocket.Dialer
	reconnectDelay time.Duration
	handlers       Handlers

	mu     sync.Mutex
	state  State
	conn   *websocket.Conn
	cancel context.CancelFunc
	closed bool
	done   chan struct{}
}

func NewSubscriber(wsBaseURL string, unitID int64, handlers Handlers) *Subscriber {
	return &Subscriber{
		wsBaseURL:      wsBaseURL,
		unitID:         unitID,
		dialer:         websocket.DefaultDialer,
		reconnectDelay: ReconnectDelay,
		handlers:       handlers,
		state:          StateConnecting,
		done:           make(chan struct{}),
	}
}

// UnitID returns the unit this subscription is scoped to.
func (s *Subscriber) UnitID() int64 {
	return s.unitID
}

func (s *Subscriber) topicURL() string {
	return fmt.Sprintf("%s/ws/freshness/%d", s.wsBaseURL, s.unitID)
}

// Start begins the connect/read/reconnect loop. It returns immediately; all
// message handling happens on the subscriber's own goroutine.
func (s *Subscriber) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx)
}

func (s *Subscriber) run(ctx context.Context) {
	defer close(s.done)
	defer s.setState(StateClosed)

	first := true
	for {
		if !first {
			s.setState(StateReconnecting)
			metrics.FeedReconnects.Inc()
			if !s.sleep(ctx, s.reconnectDelay) {
				return
			}
		}
		first = false

		conn, _, err := s.dialer.DialContext(ctx, s.topicURL(), nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.reportError(fmt.Errorf("feed connect unit %d: %w", s.unitID, err))
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		s.setState(StateOpen)
		log.Printf("[feed] subscribed to freshness/%d", s.unitID)

		s.readLoop(ctx, conn)

		conn.Close()
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		s.reportError(fmt.Errorf("feed disconnected from unit %d", s.unitID))
	}
}

// readLoop processes inbound messages until the connection drops. Malformed
// payloads are reported and skipped; they never terminate the subscription.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[feed] unexpected close for unit %d: %v", s.unitID, err)
			}
			return
		}

		var overview models.FreshnessOverview
		if err := json.Unmarshal(payload, &overview); err != nil {
			metrics.FeedParseErrors.Inc()
			s.reportError(fmt.Errorf("malformed feed payload: %w", err))
			continue
		}

		metrics.FeedMessages.WithLabelValues(strconv.FormatInt(s.unitID, 10)).Inc()
		if s.handlers.OnSnapshot != nil && !s.isClosed() {
			s.handlers.OnSnapshot(s.unitID, &overview)
		}
	}
}

// Close tears the subscription down. It is idempotent and safe from any
// goroutine; the socket is released on every exit path.
func (s *Subscriber) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if cancel != nil {
		cancel()
		<-s.done
	} else {
		// Never started.
		s.setState(StateClosed)
		close(s.done)
	}
}

// Done is closed once the run loop has fully exited.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Subscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Subscriber) setState(to State) {
	s.mu.Lock()
	from := s.state
	if from == to {
		s.mu.Unlock()
		return
	}
	if !legalTransition(from, to) {
		s.mu.Unlock()
		logIllegalTransition(from, to)
		return
	}
	s.state = to
	s.mu.Unlock()

	if s.handlers.OnState != nil {
		s.handlers.OnState(to)
	}
}

func (s *Subscriber) reportError(err error) {
	if s.handlers.OnError != nil && !s.isClosed() {
		s.handlers.OnError(err)
	}
}

func (s *Subscriber) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
