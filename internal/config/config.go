// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// Tool output limit defaults
const (
	DefaultSearchLimitValue = 10
	MaxSearchLimitValue     = 100
	MaxQueryResultsValue    = 500
)

// RecentWindowMaxDaysValue caps recency windows; the feed only spans a few
// years and anything beyond a year is better served by a date-range search.
const RecentWindowMaxDaysValue = 365

// Config holds all configuration for the MCP server.
type Config struct {
	RoadmapBaseURL    string        // ROADMAP_BASE_URL, default the public v2 endpoint
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms (30s)
	SnapshotTTL       time.Duration // SNAPSHOT_TTL_MS, default 900000ms (15m)
	RefreshTimeout    time.Duration // REFRESH_TIMEOUT_MS, default 45000ms (45s)

	TextCacheMaxItems int // TEXT_CACHE_MAX_ITEMS, default 4096

	// Tool output limits
	DefaultSearchLimit  int // DEFAULT_SEARCH_LIMIT
	MaxSearchLimit      int // MAX_SEARCH_LIMIT
	MaxQueryResults     int // MAX_QUERY_RESULTS
	RecentWindowMaxDays int // RECENT_WINDOW_MAX_DAYS

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		RoadmapBaseURL:    getEnvString("ROADMAP_BASE_URL", roadmap.DefaultBaseURL),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 30000),
		SnapshotTTL:       getEnvDurationMs("SNAPSHOT_TTL_MS", 900000),
		RefreshTimeout:    getEnvDurationMs("REFRESH_TIMEOUT_MS", 45000),

		TextCacheMaxItems: getEnvInt("TEXT_CACHE_MAX_ITEMS", 4096),

		DefaultSearchLimit:  getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		MaxSearchLimit:      getEnvInt("MAX_SEARCH_LIMIT", MaxSearchLimitValue),
		MaxQueryResults:     getEnvInt("MAX_QUERY_RESULTS", MaxQueryResultsValue),
		RecentWindowMaxDays: getEnvInt("RECENT_WINDOW_MAX_DAYS", RecentWindowMaxDaysValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
