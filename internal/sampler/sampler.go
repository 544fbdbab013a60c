// Package sampler periodically feeds simulated readings into the store.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/water-iq/monitor/internal/model"
)

const DefaultSchedule = "@every 30s"

var ErrStoreLoading = errors.New("store is loading")

type Store interface {
	Loading() bool
	Sensors() []model.Sensor
	RecordReading(ctx context.Context, sensorID string, reading model.Reading) bool
}

type ReadingSource interface {
	Sample(sensorID string, sensorType model.SensorType, seq int) model.Reading
}

type Sampler struct {
	store     Store
	source    ReadingSource
	schedule  cron.Schedule
	refreshCh chan struct{}
	logger    *slog.Logger

	mu  sync.Mutex
	seq int
}

// New validates schedule (standard cron or a descriptor such as "@every 30s").
// An empty schedule disables periodic passes; TriggerRefresh still works.
func New(st Store, source ReadingSource, schedule string, logger *slog.Logger) (*Sampler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sampler{store: st, source: source, refreshCh: make(chan struct{}, 1), logger: logger}
	if schedule != "" {
		parsed, err := cron.ParseStandard(schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid sampler schedule %q: %w", schedule, err)
		}
		s.schedule = parsed
	}
	return s, nil
}

func (s *Sampler) TriggerRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// Run serves scheduled and manual passes until ctx is done. Passes never
// overlap: the cron job only queues a refresh.
func (s *Sampler) Run(ctx context.Context) {
	if s.schedule != nil {
		c := cron.New()
		c.Schedule(s.schedule, cron.FuncJob(s.TriggerRefresh))
		c.Start()
		defer func() {
			<-c.Stop().Done()
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.refreshCh:
		}
		n, err := s.RunOnce(ctx)
		if err != nil {
			if errors.Is(err, ErrStoreLoading) {
				s.logger.Info("sampling skipped; store loading")
				continue
			}
			s.logger.Error("sampling failed", "err", err)
			continue
		}
		s.logger.Debug("sampling pass complete", "recorded", n)
	}
}

// RunOnce records one reading for every sensor that is not offline and
// returns how many were recorded.
func (s *Sampler) RunOnce(ctx context.Context) (int, error) {
	if s.store.Loading() {
		return 0, ErrStoreLoading
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded := 0
	for _, sensor := range s.store.Sensors() {
		if err := ctx.Err(); err != nil {
			return recorded, err
		}
		if sensor.Status == model.SensorOffline {
			continue
		}
		s.seq++
		reading := s.source.Sample(sensor.ID, sensor.Type, s.seq)
		if s.store.RecordReading(ctx, sensor.ID, reading) {
			recorded++
		}
	}
	return recorded, nil
}
