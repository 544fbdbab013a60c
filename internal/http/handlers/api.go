package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/water-iq/monitor/internal/auth"
	"github.com/water-iq/monitor/internal/journal"
	"github.com/water-iq/monitor/internal/model"
	"github.com/water-iq/monitor/internal/render"
)

// Store is the dashboard state the handlers read and mutate.
type Store interface {
	Loading() bool
	Sensors() []model.Sensor
	Devices() []model.Device
	Alerts() []model.Alert
	TopologyNodes() []model.TopologyNode
	ResolvedNodes() []model.ResolvedNode
	Summary() model.DashboardSummary
	ReadingsFor(sensorID string) []model.Reading
	UsageHistory() []model.UsageRecord
	UsageChart() model.ChartData
	ToggleDevicePower(ctx context.Context, deviceID string) bool
	ToggleDeviceAutomatic(ctx context.Context, deviceID string) bool
	AcknowledgeAlert(ctx context.Context, alertID string) bool
}

// Sampler triggers an asynchronous reading pass.
type Sampler interface {
	TriggerRefresh()
}

// Authenticator issues simulated sessions.
type Authenticator interface {
	Login(email, password string) (auth.Session, error)
}

// ActivityLog lists recorded operator actions.
type ActivityLog interface {
	List(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Options holds presentation settings that are not dependencies.
type Options struct {
	StaticDir string
	MapSize   render.Size
	ChartSize render.Size
}

// API groups HTTP handlers and dependencies.
type API struct {
	store    Store
	sampler  Sampler
	auth     Authenticator
	activity ActivityLog
	logger   *slog.Logger
	opts     Options
}

// New creates HTTP handlers with explicit dependencies.
func New(
	store Store,
	sampler Sampler,
	authenticator Authenticator,
	activity ActivityLog,
	logger *slog.Logger,
	opts Options,
) *API {
	if logger == nil {
		logger = slog.Default()
	}
	opts.MapSize = opts.MapSize.Normalize(render.DefaultMapSize)
	opts.ChartSize = opts.ChartSize.Normalize(render.DefaultChartSize)
	return &API{
		store:    store,
		sampler:  sampler,
		auth:     authenticator,
		activity: activity,
		logger:   logger,
		opts:     opts,
	}
}

// Logger returns request logger used by HTTP middleware.
func (a *API) Logger() *slog.Logger {
	return a.logger
}

// Health reports liveness and whether the store is still loading.
func (a *API) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "loading": a.store.Loading()})
}

// RequireLoaded answers 503 until the store has been initialized.
func (a *API) RequireLoaded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.store.Loading() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, "loading", "Dashboard data is still loading")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Static serves frontend assets and SPA fallback.
func (a *API) Static(w http.ResponseWriter, r *http.Request) {
	if a.opts.StaticDir == "" {
		writeError(w, http.StatusNotFound, "frontend_missing", "Frontend dist not found")
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}
	cleanPath := strings.TrimPrefix(filepath.Clean("/"+path), "/")
	fullPath := filepath.Join(a.opts.StaticDir, cleanPath)
	if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
		http.ServeFile(w, r, fullPath)
		return
	}
	index := filepath.Join(a.opts.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeError(w, http.StatusNotFound, "frontend_missing", "Frontend dist not found")
		return
	}
	http.ServeFile(w, r, index)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

func writeAccepted(w http.ResponseWriter) {
	writeJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, key string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
