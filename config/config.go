package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint    = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod = 600 * time.Second
	DefaultHTTPTimeout = 30 * time.Second
)

var ErrMissingCredentials = errors.New("missing required credentials")

type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
	Endpoint       string
	RetryPeriod    time.Duration
	HTTPTimeout    time.Duration
	BotEnv         bool
	ReportErrors   bool
	ConnString     string
	MaxPgxConn     int32
	HTTPAddr       string
	Logger         Logger
}

type Logger struct {
	Development bool
	Level       string
	File        string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
}

// LoadEnvCfg reads the process environment, first merging the dotenv file at
// source if it exists. Variables already set in the environment win.
func LoadEnvCfg(source string) (*Config, error) {
	if source == "" {
		source = ".env"
	}
	if err := godotenv.Load(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading enviroment file %v: %w", source, err)
	}

	retryPeriod, err := parseSeconds("RETRY_PERIOD", DefaultRetryPeriod)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := parseSeconds("HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	maxPgxConn, err := parseInt("MAX_PGX_CONN", 4)
	if err != nil {
		return nil, err
	}
	maxSize, err := parseInt("LOG_MAX_SIZE", 10)
	if err != nil {
		return nil, err
	}
	maxBackups, err := parseInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}
	maxAge, err := parseInt("LOG_MAX_AGE", 28)
	if err != nil {
		return nil, err
	}

	botDebug := os.Getenv("BOT_ENV") == "debug"
	level := getEnv("LOG_LEVEL", "info")
	if botDebug {
		level = "debug"
	}

	return &Config{
		PracticumToken: strings.TrimSpace(os.Getenv("PRACTICUM_TOKEN")),
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		Endpoint:       getEnv("PRACTICUM_ENDPOINT", DefaultEndpoint),
		RetryPeriod:    retryPeriod,
		HTTPTimeout:    httpTimeout,
		BotEnv:         botDebug,
		ReportErrors:   os.Getenv("REPORT_ERRORS") == "true",
		ConnString:     os.Getenv("CONNECTION_STRING"),
		MaxPgxConn:     int32(maxPgxConn),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		Logger: Logger{
			Development: botDebug,
			Level:       level,
			File:        getEnv("LOG_FILE", "log.txt"),
			MaxSize:     maxSize,
			MaxBackups:  maxBackups,
			MaxAge:      maxAge,
		},
	}, nil
}

// Validate reports every credential that is missing or empty.
func (c *Config) Validate() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("error parsing %v string: %v, err: %w", key, raw, err)
	}
	return parsed, nil
}

func parseSeconds(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing %v string: %v, err: %w", key, raw, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%v must be positive, got %v", key, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
