package mockdata

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/water-iq/monitor/internal/model"
)

const (
	DefaultReadingCount = 24
	DefaultUsageDays    = 30
	usageLocation       = "Main House"
)

// Generator produces the fixture collections and randomized series the
// dashboard runs on. Shapes are fixed; values are drawn from rng.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithRand replaces the random source, mainly for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

func New(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Range describes the unit and value bounds for one sensor category.
type Range struct {
	Unit string
	Min  int
	Max  int
}

// RangeFor returns the reading unit and bounds for a sensor type.
func RangeFor(sensorType model.SensorType) Range {
	switch sensorType {
	case model.SensorFlow:
		return Range{Unit: "L/min", Min: 15, Max: 25}
	case model.SensorPressure:
		return Range{Unit: "psi", Min: 45, Max: 55}
	case model.SensorSoilMoisture:
		return Range{Unit: "%", Min: 20, Max: 40}
	case model.SensorWaterLevel:
		return Range{Unit: "%", Min: 60, Max: 90}
	case model.SensorTemperatureHumidity:
		return Range{Unit: "°C", Min: 18, Max: 26}
	case model.SensorRainfall:
		return Range{Unit: "mm", Min: 0, Max: 5}
	default:
		return Range{Unit: "units", Min: 0, Max: 100}
	}
}

// Readings returns count hourly readings ending one hour before now,
// oldest first.
func (g *Generator) Readings(sensorID string, sensorType model.SensorType, count int) []model.Reading {
	if count <= 0 {
		return []model.Reading{}
	}
	bounds := RangeFor(sensorType)
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	readings := make([]model.Reading, 0, count)
	for i := 0; i < count; i++ {
		readings = append(readings, model.Reading{
			ID:        fmt.Sprintf("%s-%d", sensorID, i),
			SensorID:  sensorID,
			Timestamp: hoursAgo(now, count-i),
			Value:     float64(g.intn(bounds.Min, bounds.Max)),
			Unit:      bounds.Unit,
		})
	}
	return readings
}

// Sample returns one reading taken now. seq becomes part of the reading id.
func (g *Generator) Sample(sensorID string, sensorType model.SensorType, seq int) model.Reading {
	bounds := RangeFor(sensorType)
	g.mu.Lock()
	defer g.mu.Unlock()
	return model.Reading{
		ID:        fmt.Sprintf("%s-live-%d", sensorID, seq),
		SensorID:  sensorID,
		Timestamp: g.now().UnixMilli(),
		Value:     float64(g.intn(bounds.Min, bounds.Max)),
		Unit:      bounds.Unit,
	}
}

// UsageHistory returns one record per day for the past days, oldest first,
// alternating Domestic and Irrigation purposes.
func (g *Generator) UsageHistory(days int) []model.UsageRecord {
	if days <= 0 {
		return []model.UsageRecord{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	usage := make([]model.UsageRecord, 0, days)
	for i := 0; i < days; i++ {
		purpose := model.PurposeIrrigation
		if i%2 == 0 {
			purpose = model.PurposeDomestic
		}
		usage = append(usage, model.UsageRecord{
			ID:        fmt.Sprintf("u%d", i),
			Timestamp: hoursAgo(now, days-i),
			Volume:    float64(g.intn(200, 350)),
			Location:  usageLocation,
			Purpose:   purpose,
		})
	}
	return usage
}

// WeeklyChart returns this week's and last week's daily usage.
func (g *Generator) WeeklyChart() model.ChartData {
	g.mu.Lock()
	defer g.mu.Unlock()

	thisWeek := make([]float64, 7)
	lastWeek := make([]float64, 7)
	for i := range thisWeek {
		thisWeek[i] = float64(g.intn(220, 320))
	}
	for i := range lastWeek {
		lastWeek[i] = float64(g.intn(240, 350))
	}
	return model.ChartData{
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Datasets: []model.Series{
			{Label: "This Week", Data: thisWeek, BorderColor: "#0891B2", BackgroundColor: "rgba(8, 145, 178, 0.1)"},
			{Label: "Last Week", Data: lastWeek, BorderColor: "#94A3B8", BackgroundColor: "rgba(148, 163, 184, 0.1)"},
		},
	}
}

// SensorsWithReadings returns the sensor fixtures with LastReading set to
// the newest generated reading.
func (g *Generator) SensorsWithReadings() []model.Sensor {
	sensors := Sensors()
	for i := range sensors {
		readings := g.Readings(sensors[i].ID, sensors[i].Type, DefaultReadingCount)
		if len(readings) > 0 {
			last := readings[len(readings)-1]
			sensors[i].LastReading = &last
		}
	}
	return sensors
}

// Alerts returns the alert fixtures with timestamps relative to now.
func (g *Generator) Alerts() []model.Alert {
	g.mu.Lock()
	now := g.now()
	g.mu.Unlock()
	return alertFixtures(now)
}

// intn returns an integer in [lo, hi]. Callers hold g.mu.
func (g *Generator) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

func hoursAgo(now time.Time, hours int) int64 {
	return now.Add(-time.Duration(hours) * time.Hour).UnixMilli()
}

// Devices returns the device fixtures.
func (g *Generator) Devices() []model.Device { return Devices() }

// TopologyNodes returns the map layout fixtures.
func (g *Generator) TopologyNodes() []model.TopologyNode { return TopologyNodes() }

// Summary returns the seed dashboard counters.
func (g *Generator) Summary() model.DashboardSummary { return Summary() }
