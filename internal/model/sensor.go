package model

type SensorType string

const (
	SensorFlow                SensorType = "flow"
	SensorPressure            SensorType = "pressure"
	SensorSoilMoisture        SensorType = "soilMoisture"
	SensorWaterLevel          SensorType = "waterLevel"
	SensorTemperatureHumidity SensorType = "temperatureHumidity"
	SensorRainfall            SensorType = "rainfall"
	SensorGas                 SensorType = "gas"
)

// SensorTypes lists every known sensor category in display order.
var SensorTypes = []SensorType{
	SensorFlow,
	SensorPressure,
	SensorSoilMoisture,
	SensorWaterLevel,
	SensorTemperatureHumidity,
	SensorRainfall,
	SensorGas,
}

type SensorStatus string

const (
	SensorOnline  SensorStatus = "online"
	SensorOffline SensorStatus = "offline"
	SensorWarning SensorStatus = "warning"
	SensorError   SensorStatus = "error"
)

// Reading is one immutable measurement. Timestamp is epoch milliseconds.
type Reading struct {
	ID        string  `json:"id"`
	SensorID  string  `json:"sensor_id"`
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
}

// Sensor is a field sensor. Status and BatteryLevel are reported
// independently; neither is derived from the other.
type Sensor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         SensorType   `json:"type"`
	Location     string       `json:"location"`
	Status       SensorStatus `json:"status"`
	LastReading  *Reading     `json:"last_reading,omitempty"`
	BatteryLevel *int         `json:"battery_level,omitempty"`
}

// Clone returns a copy that shares no pointers with s.
func (s Sensor) Clone() Sensor {
	if s.LastReading != nil {
		reading := *s.LastReading
		s.LastReading = &reading
	}
	if s.BatteryLevel != nil {
		level := *s.BatteryLevel
		s.BatteryLevel = &level
	}
	return s
}
