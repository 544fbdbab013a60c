package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultHTTPAddr        = ":8099"
	defaultFrontendDist    = "/app/frontend/dist"
	defaultLoadDelay       = time.Second
	defaultSamplerSchedule = "@every 30s"
	defaultJournalDSN      = ":memory:"
	defaultTokenTTL        = 24 * time.Hour
	defaultMapWidth        = 600
	defaultMapHeight       = 400
	defaultChartWidth      = 500
	defaultChartHeight     = 300
)

// Config stores runtime settings loaded from .env and environment variables.
type Config struct {
	HTTPAddr        string
	FrontendDist    string
	LogLevel        slog.Level
	LogFormat       string
	LoadDelay       time.Duration
	SamplerSchedule string
	JournalDSN      string
	JWTSecret       string
	TokenTTL        time.Duration
	AuthDisabled    bool
	CORSOrigins     []string
	MapWidth        int
	MapHeight       int
	ChartWidth      int
	ChartHeight     int
}

// Load reads envFiles (default ".env") without overriding variables that are
// already set, then resolves every setting through viper with stable defaults.
// Malformed values fall back to their default.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read env file", "file", file, "err", err)
		}
	}

	v := viper.New()
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	return Config{
		HTTPAddr:        str(v, "HTTP_ADDR", defaultHTTPAddr),
		FrontendDist:    str(v, "FRONTEND_DIST", defaultFrontendDist),
		LogLevel:        parseLogLevel(str(v, "LOG_LEVEL", "info")),
		LogFormat:       parseLogFormat(str(v, "LOG_FORMAT", "json")),
		LoadDelay:       parseDuration(v, "LOAD_DELAY", defaultLoadDelay),
		SamplerSchedule: parseSchedule(v),
		JournalDSN:      str(v, "JOURNAL_DSN", defaultJournalDSN),
		JWTSecret:       str(v, "JWT_SECRET", ""),
		TokenTTL:        parseDuration(v, "TOKEN_TTL", defaultTokenTTL),
		AuthDisabled:    parseBool(v, "AUTH_DISABLED", false),
		CORSOrigins:     parseList(str(v, "CORS_ORIGINS", "*")),
		MapWidth:        parseInt(v, "MAP_WIDTH", defaultMapWidth),
		MapHeight:       parseInt(v, "MAP_HEIGHT", defaultMapHeight),
		ChartWidth:      parseInt(v, "CHART_WIDTH", defaultChartWidth),
		ChartHeight:     parseInt(v, "CHART_HEIGHT", defaultChartHeight),
	}
}

func str(v *viper.Viper, key string, fallback string) string {
	if trimmed := strings.TrimSpace(v.GetString(key)); trimmed != "" {
		return trimmed
	}
	return fallback
}

// parseDuration accepts zero so LOAD_DELAY=0s skips the simulated delay.
func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func parseInt(v *viper.Viper, key string, fallback int) int {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseBool(v *viper.Viper, key string, fallback bool) bool {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseSchedule keeps an explicitly empty SAMPLER_SCHEDULE, or "off", as
// "disabled".
func parseSchedule(v *viper.Viper) string {
	if !v.IsSet("SAMPLER_SCHEDULE") {
		return defaultSamplerSchedule
	}
	raw := strings.TrimSpace(v.GetString("SAMPLER_SCHEDULE"))
	if strings.EqualFold(raw, "off") {
		return ""
	}
	return raw
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseLogFormat(raw string) string {
	if strings.EqualFold(raw, "text") {
		return "text"
	}
	return "json"
}
