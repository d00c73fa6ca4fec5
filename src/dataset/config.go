package dataset

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL points at the published static dataset namespace. Override
// with BALANCA_DATA_BASE_URL (or the -base flag of each command) to run
// against a local copy, e.g. one served by balancaserve.
const DefaultBaseURL = "https://raw.githubusercontent.com/bruceeconomista/balanca-comercial-sc-v2/main/data"

// Config carries the settings shared by the viewer, reader and server
// commands.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	FirstYear int
	LastYear  int
	LogLevel  string
	LogFile   string
}

// LoadConfig reads configuration from environment variables and an optional
// .env file. Flag values layered on top by each command win over these.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		Debugf("no .env file loaded: %v", err)
	}
	return Config{
		BaseURL:   getEnvOrDefault("BALANCA_DATA_BASE_URL", DefaultBaseURL),
		Timeout:   time.Duration(getEnvIntOrDefault("BALANCA_TIMEOUT_SECONDS", 30)) * time.Second,
		FirstYear: getEnvIntOrDefault("BALANCA_FIRST_YEAR", 1997),
		LastYear:  getEnvIntOrDefault("BALANCA_LAST_YEAR", 2024),
		LogLevel:  getEnvOrDefault("BALANCA_LOG_LEVEL", "info"),
		LogFile:   getEnvOrDefault("BALANCA_LOG_FILE", ""),
	}
}

// Years lists the selectable years, newest first so the selector opens on
// the most recent dataset.
func (c Config) Years() []string {
	if c.LastYear < c.FirstYear {
		return nil
	}
	out := make([]string, 0, c.LastYear-c.FirstYear+1)
	for y := c.LastYear; y >= c.FirstYear; y-- {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
