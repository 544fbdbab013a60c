package model

type AlertType string

const (
	AlertLeak     AlertType = "leak"
	AlertPressure AlertType = "pressure"
	AlertLevel    AlertType = "level"
	AlertMoisture AlertType = "moisture"
	AlertSystem   AlertType = "system"
	AlertWeather  AlertType = "weather"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is acknowledged at most once; Acknowledged never goes back to false.
type Alert struct {
	ID           string        `json:"id"`
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	Message      string        `json:"message"`
	Timestamp    int64         `json:"timestamp"`
	SensorID     *string       `json:"sensor_id,omitempty"`
	Acknowledged bool          `json:"acknowledged"`
}
