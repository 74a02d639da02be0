// Package telemetry streams rig snapshots to websocket viewers
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/archery/status"
)

var ErrViewerLimit = errors.New("viewer limit reached")

// Hub accepts viewers and broadcasts the latest snapshot to all of them
// Publish is called from the frame goroutine; viewers are served on HTTP goroutines
type Hub struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *zap.Logger
	status   *status.Registry

	mu      sync.RWMutex
	viewers map[ViewerID]*viewer
	nextID  atomic.Uint32
	closed  bool

	published atomic.Uint64
	since     time.Duration // publish throttle accumulator
}

// NewHub creates a hub; zero config fields take their defaults
func NewHub(config Config, logger *zap.Logger) *Hub {
	def := DefaultConfig()
	if config.Path == "" {
		config.Path = def.Path
	}
	if config.StatusPath == "" {
		config.StatusPath = def.StatusPath
	}
	if config.MaxViewers <= 0 {
		config.MaxViewers = def.MaxViewers
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = def.WriteTimeout
	}
	if config.PublishInterval < 0 {
		config.PublishInterval = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		config: config,
		upgrader: websocket.Upgrader{
			// Viewers are local debugging tools
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		viewers: make(map[ViewerID]*viewer),
	}
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ViewerCount() >= h.config.MaxViewers {
		http.Error(w, ErrViewerLimit.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("telemetry upgrade failed", zap.Error(err))
		return
	}

	v := newViewer(ViewerID(h.nextID.Add(1)), conn, h.config.WriteTimeout)
	if err := h.add(v); err != nil {
		v.close()
		return
	}
	h.logger.Info("telemetry viewer connected", zap.Uint32("viewer", uint32(v.id)), zap.String("addr", v.addr))

	var eg errgroup.Group
	eg.Go(func() error {
		v.readLoop()
		return nil
	})
	eg.Go(v.writeLoop)
	err = eg.Wait()

	h.remove(v.id)
	h.logger.Info("telemetry viewer disconnected", zap.Uint32("viewer", uint32(v.id)), zap.Error(err))
}

// WithStatus attaches a metrics registry; call before serving
// The hub keeps the viewer gauge current and serves the registry at StatusPath
func (h *Hub) WithStatus(reg *status.Registry) *Hub {
	h.status = reg
	h.recordViewers(0)
	return h
}

func (h *Hub) add(v *viewer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return net.ErrClosed
	}
	if len(h.viewers) >= h.config.MaxViewers {
		return ErrViewerLimit
	}
	h.viewers[v.id] = v
	h.recordViewers(len(h.viewers))
	return nil
}

func (h *Hub) remove(id ViewerID) {
	h.mu.Lock()
	delete(h.viewers, id)
	h.recordViewers(len(h.viewers))
	h.mu.Unlock()
}

func (h *Hub) recordViewers(n int) {
	if h.status != nil {
		h.status.Gauges.Get(status.TelemetryViewers).Set(float64(n))
	}
}

// serveStatus writes every registered metric as one JSON object
func (h *Hub) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.status.Values()); err != nil {
		h.logger.Debug("status write failed", zap.Error(err))
	}
}

// Publish encodes s and hands it to every viewer, replacing frames they have not sent yet
func (h *Hub) Publish(s Snapshot) error {
	frame, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, v := range h.viewers {
		v.offer(frame)
	}
	h.published.Add(1)
	return nil
}

// Tick publishes the result of capture once PublishInterval has accumulated
// Returns true when a snapshot was published
func (h *Hub) Tick(dt time.Duration, capture func() Snapshot) bool {
	h.since += dt
	if h.since < h.config.PublishInterval {
		return false
	}
	h.since = 0

	if h.ViewerCount() == 0 {
		return false
	}
	if err := h.Publish(capture()); err != nil {
		h.logger.Warn("telemetry publish failed", zap.Error(err))
		return false
	}
	return true
}

// ViewerCount returns connected viewer count
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Published returns the number of snapshots broadcast
func (h *Hub) Published() uint64 {
	return h.published.Load()
}

// Close disconnects every viewer and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.Unlock()

	for _, v := range viewers {
		v.close()
	}
}

// Handler returns a mux serving the hub at the configured path, plus metrics when attached
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(h.config.Path, h)
	if h.status != nil {
		mux.HandleFunc("GET "+h.config.StatusPath, h.serveStatus)
	}
	return mux
}

// Serve runs the HTTP server on ln until ctx is done
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("telemetry serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	h.logger.Info("telemetry listening", zap.String("addr", ln.Addr().String()), zap.String("path", h.config.Path))
	return eg.Wait()
}

// Run listens on the configured address and serves until ctx is done
// An empty address returns immediately
func (h *Hub) Run(ctx context.Context) error {
	if h.config.Addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", h.config.Addr)
	if err != nil {
		return fmt.Errorf("telemetry listen: %w", err)
	}
	return h.Serve(ctx, ln)
}
