package status

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"monitor-swiezosci/internal/feed"
	"monitor-swiezosci/internal/models"
)

// Server is the local status listener that runs alongside `watch`: health,
// metrics and the current snapshot, plus a unit-switch endpoint so the watched
// unit can be changed without restarting.
type Server struct {
	watcher *feed.Watcher
}

func NewServer(watcher *feed.Watcher) *Server {
	return &Server{watcher: watcher}
}

// StateResponse is what GET /api/v1/state returns.
type StateResponse struct {
	UnitID    int64                     `json:"unitId"`
	FeedState string                    `json:"feedState"`
	Snapshot  *models.FreshnessOverview `json:"snapshot,omitempty"`
	LastError string                    `json:"lastError,omitempty"`
}

type SwitchUnitRequest struct {
	UnitID int64 `json:"unitId"`
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT"},
	}))

	r.Get("/healthz", s.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.StateHandler)
		r.Put("/state/unit", s.SwitchUnitHandler)
	})
	return r
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) StateHandler(w http.ResponseWriter, r *http.Request) {
	resp := StateResponse{
		UnitID:    s.watcher.UnitID(),
		FeedState: s.watcher.FeedState().String(),
		Snapshot:  s.watcher.Snapshot(),
		LastError: s.watcher.LastError(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) SwitchUnitHandler(w http.ResponseWriter, r *http.Request) {
	var req SwitchUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UnitID <= 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.watcher.SetUnit(req.UnitID)
	log.Printf("[status] switched watch to unit %d", req.UnitID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "success", "unitId": req.UnitID})
}

// Serve runs the listener until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("[status] listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
