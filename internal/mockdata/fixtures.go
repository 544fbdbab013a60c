package mockdata

import (
	"time"

	"github.com/water-iq/monitor/internal/model"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func statusPtr(v model.NodeStatus) *model.NodeStatus { return &v }

// Sensors returns a fresh copy of the sensor fixtures.
func Sensors() []model.Sensor {
	return []model.Sensor{
		{ID: "s1", Name: "Main Flow Meter", Type: model.SensorFlow, Location: "Main Pipe Entry", Status: model.SensorOnline, BatteryLevel: intPtr(85)},
		{ID: "s2", Name: "Pressure Sensor 1", Type: model.SensorPressure, Location: "Distribution Junction", Status: model.SensorOnline, BatteryLevel: intPtr(92)},
		{ID: "s3", Name: "Garden Soil Sensor", Type: model.SensorSoilMoisture, Location: "North Garden", Status: model.SensorOnline, BatteryLevel: intPtr(78)},
		{ID: "s4", Name: "Tank Level Sensor", Type: model.SensorWaterLevel, Location: "Main Storage Tank", Status: model.SensorWarning, BatteryLevel: intPtr(45)},
		{ID: "s5", Name: "Environment Monitor", Type: model.SensorTemperatureHumidity, Location: "Control Room", Status: model.SensorOnline, BatteryLevel: intPtr(88)},
		{ID: "s6", Name: "Rain Gauge", Type: model.SensorRainfall, Location: "Rooftop", Status: model.SensorOffline, BatteryLevel: intPtr(12)},
	}
}

// Devices returns a fresh copy of the device fixtures.
func Devices() []model.Device {
	return []model.Device{
		{ID: "d1", Name: "Main Pump", Type: model.DevicePump, Status: model.DeviceOn, Automatic: true, Location: "Utility Room"},
		{ID: "d2", Name: "Garden Valve", Type: model.DeviceValve, Status: model.DeviceOff, Automatic: true, Location: "North Garden"},
		{ID: "d3", Name: "Sprinkler System", Type: model.DeviceIrrigator, Status: model.DeviceOff, Automatic: true, Location: "West Lawn"},
		{ID: "d4", Name: "Water Filter", Type: model.DeviceFilter, Status: model.DeviceOn, Automatic: true, Location: "Main Line"},
	}
}

func alertFixtures(now time.Time) []model.Alert {
	return []model.Alert{
		{ID: "a1", Type: model.AlertLeak, Severity: model.SeverityCritical, Message: "Possible leak detected near kitchen line", Timestamp: hoursAgo(now, 1), SensorID: strPtr("s1")},
		{ID: "a2", Type: model.AlertPressure, Severity: model.SeverityWarning, Message: "Abnormal pressure fluctuation in main line", Timestamp: hoursAgo(now, 3), SensorID: strPtr("s2"), Acknowledged: true},
		{ID: "a3", Type: model.AlertMoisture, Severity: model.SeverityInfo, Message: "Garden soil moisture below optimal levels", Timestamp: hoursAgo(now, 8), SensorID: strPtr("s3")},
		{ID: "a4", Type: model.AlertLevel, Severity: model.SeverityWarning, Message: "Water tank level dropping faster than expected", Timestamp: hoursAgo(now, 12), SensorID: strPtr("s4")},
		{ID: "a5", Type: model.AlertSystem, Severity: model.SeverityInfo, Message: "System update completed successfully", Timestamp: hoursAgo(now, 24), Acknowledged: true},
	}
}

// TopologyNodes returns the system map layout. Sensor and device nodes
// carry references, not copies.
func TopologyNodes() []model.TopologyNode {
	return []model.TopologyNode{
		{ID: "n1", Type: model.NodeJunction, X: 120, Y: 100, Status: statusPtr(model.NodeNormal), LinkedTo: []string{"n2", "n3"}, Ref: model.NoRef()},
		{ID: "n2", Type: model.NodeSensor, X: 220, Y: 100, Status: statusPtr(model.NodeNormal), LinkedTo: []string{"n3", "n4"}, Ref: model.SensorRef("s1")},
		{ID: "n3", Type: model.NodeDevice, X: 170, Y: 180, Status: statusPtr(model.NodeNormal), LinkedTo: []string{"n5"}, Ref: model.DeviceRef("d1")},
		{ID: "n4", Type: model.NodeSensor, X: 320, Y: 100, Status: statusPtr(model.NodeWarning), LinkedTo: []string{"n6"}, Ref: model.SensorRef("s2")},
		{ID: "n5", Type: model.NodeSensor, X: 170, Y: 260, Status: statusPtr(model.NodeNormal), LinkedTo: []string{}, Ref: model.SensorRef("s3")},
		{ID: "n6", Type: model.NodeTank, X: 420, Y: 100, Status: statusPtr(model.NodeWarning), LinkedTo: []string{}, Ref: model.NoRef()},
	}
}

// Summary returns the seed dashboard counters.
func Summary() model.DashboardSummary {
	return model.DashboardSummary{
		TotalWaterUsage:   3250,
		ActiveAlerts:      3,
		LeakProbability:   22,
		SavingsPercentage: 15,
		HealthScore:       85,
	}
}

// Users returns the accounts accepted by simulated login.
func Users() []model.User {
	return []model.User{
		{ID: "1", Name: "Mohale User", Email: "mohale@watermonitor.com", Role: model.RoleAdmin},
		{ID: "2", Name: "Selimo User", Email: "selimo@watermonitor.com", Role: model.RoleUser},
		{ID: "3", Name: "Thebe Support", Email: "thebe@watermonitor.com", Role: model.RoleTechnician},
	}
}
