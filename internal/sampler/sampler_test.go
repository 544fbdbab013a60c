package sampler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/water-iq/monitor/internal/mockdata"
	"github.com/water-iq/monitor/internal/model"
	"github.com/water-iq/monitor/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoadedStore(t *testing.T) (*store.Store, *mockdata.Generator) {
	t.Helper()
	gen := mockdata.New()
	s := store.New(gen, 0, testLogger())
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s, gen
}

func TestNewRejectsBadSchedule(t *testing.T) {
	s, gen := newLoadedStore(t)
	if _, err := New(s, gen, "every now and then", testLogger()); err == nil {
		t.Fatalf("expected schedule error")
	}
	if _, err := New(s, gen, "", testLogger()); err != nil {
		t.Fatalf("empty schedule should disable, got %v", err)
	}
}

func TestRunOnceSkipsOfflineSensors(t *testing.T) {
	s, gen := newLoadedStore(t)
	sm, err := New(s, gen, "", testLogger())
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	n, err := sm.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if n != 5 {
		t.Fatalf("recorded = %d, want 5", n)
	}

	for _, sensor := range s.Sensors() {
		live := sensor.LastReading != nil && strings.HasPrefix(sensor.LastReading.ID, sensor.ID+"-live-")
		if sensor.Status == model.SensorOffline && live {
			t.Fatalf("offline sensor %s was sampled", sensor.ID)
		}
		if sensor.Status != model.SensorOffline && !live {
			t.Fatalf("sensor %s last reading not refreshed: %+v", sensor.ID, sensor.LastReading)
		}
	}
}

func TestRunOnceWhileLoading(t *testing.T) {
	gen := mockdata.New()
	s := store.New(gen, time.Hour, testLogger())
	sm, err := New(s, gen, "", testLogger())
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}
	if _, err := sm.RunOnce(context.Background()); !errors.Is(err, ErrStoreLoading) {
		t.Fatalf("expected ErrStoreLoading, got %v", err)
	}
}

func TestTriggerRefreshRunsPass(t *testing.T) {
	s, gen := newLoadedStore(t)
	sm, err := New(s, gen, "", testLogger())
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}

	events := make(chan store.ChangeEvent, 16)
	s.Subscribe(func(e store.ChangeEvent) {
		if e.Kind == store.ChangeSensorReading {
			select {
			case events <- e:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sm.Run(ctx)
		close(done)
	}()
	sm.TriggerRefresh()
	sm.TriggerRefresh()

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a sensor reading event")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
