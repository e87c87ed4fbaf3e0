package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "PRACTICUM_ENDPOINT",
	"RETRY_PERIOD", "HTTP_TIMEOUT", "BOT_ENV", "REPORT_ERRORS", "CONNECTION_STRING",
	"MAX_PGX_CONN", "HTTP_ADDR", "LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE",
	"LOG_MAX_BACKUPS", "LOG_MAX_AGE",
}

// clearEnv blanks every variable the loader reads; t.Setenv restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadEnvCfg_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadEnvCfg(missingFile(t))
	require.NoError(t, err)
	require.Equal(t, DefaultEndpoint, cfg.Endpoint)
	require.Equal(t, DefaultRetryPeriod, cfg.RetryPeriod)
	require.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	require.Equal(t, "log.txt", cfg.Logger.File)
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, int32(4), cfg.MaxPgxConn)
	require.False(t, cfg.BotEnv)
	require.False(t, cfg.ReportErrors)
}

func TestLoadEnvCfg_FromDotenvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "PRACTICUM_TOKEN=p-token\nTELEGRAM_TOKEN=t-token\nTELEGRAM_CHAT_ID=12345\n" +
		"RETRY_PERIOD=30\nBOT_ENV=debug\nREPORT_ERRORS=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadEnvCfg(path)
	require.NoError(t, err)
	require.Equal(t, "p-token", cfg.PracticumToken)
	require.Equal(t, "t-token", cfg.TelegramToken)
	require.Equal(t, "12345", cfg.TelegramChatID)
	require.Equal(t, 30*time.Second, cfg.RetryPeriod)
	require.True(t, cfg.BotEnv)
	require.True(t, cfg.ReportErrors)
	require.Equal(t, "debug", cfg.Logger.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvCfg_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "retry period not a number", key: "RETRY_PERIOD", value: "ten"},
		{name: "retry period negative", key: "RETRY_PERIOD", value: "-5"},
		{name: "http timeout zero", key: "HTTP_TIMEOUT", value: "0"},
		{name: "pgx conns", key: "MAX_PGX_CONN", value: "many"},
		{name: "log size", key: "LOG_MAX_SIZE", value: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnvCfg(missingFile(t))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		missing []string
	}{
		{
			name: "all present",
			cfg:  Config{PracticumToken: "a", TelegramToken: "b", TelegramChatID: "c"},
		},
		{
			name:    "practicum token missing",
			cfg:     Config{TelegramToken: "b", TelegramChatID: "c"},
			missing: []string{"PRACTICUM_TOKEN"},
		},
		{
			name:    "everything missing",
			cfg:     Config{},
			missing: []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.missing) == 0 {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, ErrMissingCredentials))
			for _, key := range tt.missing {
				require.Contains(t, err.Error(), key)
			}
		})
	}
}
