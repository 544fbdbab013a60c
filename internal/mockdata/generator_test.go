package mockdata

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/water-iq/monitor/internal/model"
)

func newTestGenerator() (*Generator, time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return New(WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(func() time.Time { return now })), now
}

func TestReadingsShapeFollowsSensorType(t *testing.T) {
	gen, now := newTestGenerator()

	for _, sensorType := range append(model.SensorTypes, model.SensorType("unknown")) {
		bounds := RangeFor(sensorType)
		readings := gen.Readings("s9", sensorType, DefaultReadingCount)
		if len(readings) != DefaultReadingCount {
			t.Fatalf("%s: expected %d readings, got %d", sensorType, DefaultReadingCount, len(readings))
		}
		for i, reading := range readings {
			if reading.Unit != bounds.Unit {
				t.Fatalf("%s: unit = %q, want %q", sensorType, reading.Unit, bounds.Unit)
			}
			if reading.Value < float64(bounds.Min) || reading.Value > float64(bounds.Max) {
				t.Fatalf("%s: value %v outside [%d, %d]", sensorType, reading.Value, bounds.Min, bounds.Max)
			}
			if i > 0 && reading.Timestamp <= readings[i-1].Timestamp {
				t.Fatalf("%s: readings not in ascending time order at %d", sensorType, i)
			}
		}
		wantLast := now.Add(-time.Hour).UnixMilli()
		if got := readings[len(readings)-1].Timestamp; got != wantLast {
			t.Fatalf("%s: last timestamp = %d, want %d", sensorType, got, wantLast)
		}
		if readings[0].ID != "s9-0" {
			t.Fatalf("%s: first id = %q, want s9-0", sensorType, readings[0].ID)
		}
	}
}

func TestUsageHistoryAlternatesPurpose(t *testing.T) {
	gen, _ := newTestGenerator()
	usage := gen.UsageHistory(DefaultUsageDays)
	if len(usage) != DefaultUsageDays {
		t.Fatalf("expected %d records, got %d", DefaultUsageDays, len(usage))
	}
	for i, record := range usage {
		want := model.PurposeIrrigation
		if i%2 == 0 {
			want = model.PurposeDomestic
		}
		if record.Purpose != want {
			t.Fatalf("record %d purpose = %q, want %q", i, record.Purpose, want)
		}
		if record.Volume < 200 || record.Volume > 350 {
			t.Fatalf("record %d volume %v outside [200, 350]", i, record.Volume)
		}
	}
	if got := gen.UsageHistory(0); len(got) != 0 {
		t.Fatalf("expected empty history for zero days, got %d", len(got))
	}
}

func TestWeeklyChartHasTwoSeries(t *testing.T) {
	gen, _ := newTestGenerator()
	chart := gen.WeeklyChart()
	if len(chart.Labels) != 7 || len(chart.Datasets) != 2 {
		t.Fatalf("unexpected chart shape: %d labels, %d datasets", len(chart.Labels), len(chart.Datasets))
	}
	for _, series := range chart.Datasets {
		if len(series.Data) != len(chart.Labels) {
			t.Fatalf("series %q has %d points, want %d", series.Label, len(series.Data), len(chart.Labels))
		}
	}
}

func TestTopologyFixturesAreConsistent(t *testing.T) {
	sensors := map[string]bool{}
	for _, sensor := range Sensors() {
		sensors[sensor.ID] = true
	}
	devices := map[string]bool{}
	for _, device := range Devices() {
		devices[device.ID] = true
	}
	nodes := map[string]bool{}
	for _, node := range TopologyNodes() {
		nodes[node.ID] = true
	}

	for _, node := range TopologyNodes() {
		if err := node.Validate(); err != nil {
			t.Fatalf("invalid fixture: %v", err)
		}
		switch node.Ref.Kind {
		case model.RefSensor:
			if !sensors[node.Ref.ID] {
				t.Fatalf("node %s references unknown sensor %s", node.ID, node.Ref.ID)
			}
		case model.RefDevice:
			if !devices[node.Ref.ID] {
				t.Fatalf("node %s references unknown device %s", node.ID, node.Ref.ID)
			}
		}
		for _, target := range node.LinkedTo {
			if !nodes[target] {
				t.Fatalf("node %s links to unknown node %s", node.ID, target)
			}
		}
	}
}

func TestSensorsWithReadingsSetsLastReading(t *testing.T) {
	gen, _ := newTestGenerator()
	for _, sensor := range gen.SensorsWithReadings() {
		if sensor.LastReading == nil {
			t.Fatalf("sensor %s has no last reading", sensor.ID)
		}
		if sensor.LastReading.SensorID != sensor.ID {
			t.Fatalf("sensor %s last reading belongs to %s", sensor.ID, sensor.LastReading.SensorID)
		}
	}
}
