package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/water-iq/monitor/internal/mockdata"
	"github.com/water-iq/monitor/internal/model"
)

// DefaultLoadDelay is the simulated latency before collections are populated.
const DefaultLoadDelay = time.Second

// Source supplies seed collections and freshly generated series.
type Source interface {
	SensorsWithReadings() []model.Sensor
	Devices() []model.Device
	Alerts() []model.Alert
	TopologyNodes() []model.TopologyNode
	Summary() model.DashboardSummary
	Readings(sensorID string, sensorType model.SensorType, count int) []model.Reading
	UsageHistory(days int) []model.UsageRecord
	WeeklyChart() model.ChartData
}

// Store is the single owner of the dashboard collections. Reads return
// copies; mutations touch one entity and silently ignore unknown ids.
type Store struct {
	source    Source
	loadDelay time.Duration
	logger    *slog.Logger

	mu       sync.RWMutex
	loading  bool
	sensors  []model.Sensor
	devices  []model.Device
	alerts   []model.Alert
	nodes    []model.TopologyNode
	summary  model.DashboardSummary
	ready    chan struct{}
	initOnce sync.Once

	listenersMu sync.RWMutex
	listeners   []Listener
}

// New creates a store in the loading state.
func New(source Source, loadDelay time.Duration, logger *slog.Logger) *Store {
	if loadDelay < 0 {
		loadDelay = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source:    source,
		loadDelay: loadDelay,
		logger:    logger,
		loading:   true,
		ready:     make(chan struct{}),
	}
}

// Initialize waits out the load delay and then populates every collection.
// It returns ctx.Err() if cancelled first; the store then stays loading.
// Only the first successful call has an effect; later calls return at once.
func (s *Store) Initialize(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	default:
	}
	if s.loadDelay > 0 {
		timer := time.NewTimer(s.loadDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	loaded := false
	s.initOnce.Do(func() {
		sensors := s.source.SensorsWithReadings()
		devices := s.source.Devices()
		alerts := s.source.Alerts()
		nodes := s.source.TopologyNodes()
		summary := s.source.Summary()
		for _, node := range nodes {
			if err := node.Validate(); err != nil {
				s.logger.Warn("topology node reference mismatch", "node", node.ID, "err", err)
			}
		}

		s.mu.Lock()
		s.sensors = sensors
		s.devices = devices
		s.alerts = alerts
		s.nodes = nodes
		s.summary = summary
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
		loaded = true

		s.logger.Info("store initialized",
			"sensors", len(sensors),
			"devices", len(devices),
			"alerts", len(alerts),
			"nodes", len(nodes),
		)
	})
	if loaded {
		s.publish(ctx, ChangeInitialized, "")
	}
	return nil
}

// Loading reports whether collections are still being populated.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Ready is closed once Initialize has populated the store.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Sensors returns a copy of every sensor with its last reading.
func (s *Store) Sensors() []model.Sensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Sensor, len(s.sensors))
	for i, sensor := range s.sensors {
		out[i] = sensor.Clone()
	}
	return out
}

// Devices returns a copy of the device list.
func (s *Store) Devices() []model.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Device(nil), s.devices...)
}

// Alerts returns a copy of all alerts, acknowledged ones included.
func (s *Store) Alerts() []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// TopologyNodes returns the unresolved map nodes. See ResolvedNodes.
func (s *Store) TopologyNodes() []model.TopologyNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TopologyNode, len(s.nodes))
	for i, node := range s.nodes {
		out[i] = node.Clone()
	}
	return out
}

// ResolvedNodes joins every topology node with the current sensor or device
// it references. References that do not resolve leave both fields nil.
func (s *Store) ResolvedNodes() []model.ResolvedNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ResolvedNode, 0, len(s.nodes))
	for _, node := range s.nodes {
		resolved := model.ResolvedNode{TopologyNode: node.Clone()}
		switch node.Ref.Kind {
		case model.RefSensor:
			if i := s.sensorIndex(node.Ref.ID); i >= 0 {
				sensor := s.sensors[i].Clone()
				resolved.Sensor = &sensor
			}
		case model.RefDevice:
			if i := s.deviceIndex(node.Ref.ID); i >= 0 {
				device := s.devices[i]
				resolved.Device = &device
			}
		}
		out = append(out, resolved)
	}
	return out
}

// Summary returns the dashboard counters. ActiveAlerts is the live count of
// unacknowledged alerts.
func (s *Store) Summary() model.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := s.summary
	if !s.loading {
		summary.ActiveAlerts = s.activeAlerts()
	}
	return summary
}

// ReadingsFor generates a new reading series for the sensor's category.
// Unknown sensors yield an empty slice. Nothing is cached.
func (s *Store) ReadingsFor(sensorID string) []model.Reading {
	s.mu.RLock()
	i := s.sensorIndex(sensorID)
	var sensorType model.SensorType
	if i >= 0 {
		sensorType = s.sensors[i].Type
	}
	s.mu.RUnlock()

	if i < 0 {
		return []model.Reading{}
	}
	return s.source.Readings(sensorID, sensorType, mockdata.DefaultReadingCount)
}

// UsageHistory generates the daily usage records for the past month.
func (s *Store) UsageHistory() []model.UsageRecord {
	return s.source.UsageHistory(mockdata.DefaultUsageDays)
}

// UsageChart generates the weekly usage comparison.
func (s *Store) UsageChart() model.ChartData {
	return s.source.WeeklyChart()
}

func (s *Store) activeAlerts() int {
	count := 0
	for _, alert := range s.alerts {
		if !alert.Acknowledged {
			count++
		}
	}
	return count
}

func (s *Store) sensorIndex(id string) int {
	for i := range s.sensors {
		if s.sensors[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) deviceIndex(id string) int {
	for i := range s.devices {
		if s.devices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) alertIndex(id string) int {
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			return i
		}
	}
	return -1
}
