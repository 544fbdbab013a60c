package model

const (
	PurposeDomestic   = "Domestic"
	PurposeIrrigation = "Irrigation"
)

type UsageRecord struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Volume    float64 `json:"volume"`
	Location  string  `json:"location"`
	Purpose   string  `json:"purpose,omitempty"`
}

type Series struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"border_color,omitempty"`
	BackgroundColor string    `json:"background_color,omitempty"`
}

// ChartData is a label axis plus one or more named series of equal length.
type ChartData struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

type DashboardSummary struct {
	TotalWaterUsage   int `json:"total_water_usage"`
	ActiveAlerts      int `json:"active_alerts"`
	LeakProbability   int `json:"leak_probability"`
	SavingsPercentage int `json:"savings_percentage"`
	HealthScore       int `json:"health_score"`
}

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
	RoleTechnician UserRole = "technician"
)

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
