package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, 1997, cfg.FirstYear)
	require.Equal(t, 2024, cfg.LastYear)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BALANCA_DATA_BASE_URL", "http://localhost:8077/data")
	t.Setenv("BALANCA_TIMEOUT_SECONDS", "5")
	t.Setenv("BALANCA_FIRST_YEAR", "2019")
	t.Setenv("BALANCA_LAST_YEAR", "2021")

	cfg := LoadConfig()
	require.Equal(t, "http://localhost:8077/data", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, []string{"2021", "2020", "2019"}, cfg.Years())
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("BALANCA_TIMEOUT_SECONDS", "soon")
	cfg := LoadConfig()
	require.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestYears_EmptyWhenRangeInverted(t *testing.T) {
	cfg := Config{FirstYear: 2024, LastYear: 2020}
	require.Empty(t, cfg.Years())
}
