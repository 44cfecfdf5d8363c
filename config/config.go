package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLLMBaseURL   = "https://api.groq.com/openai/v1"
	defaultLLMModel     = "llama-3.3-70b-versatile"
	defaultLLMTimeout   = 60 * time.Second
	defaultLLMMaxTokens = 4096
	defaultHTTPTimeout  = 30 * time.Second
	defaultLogLevel     = slog.LevelWarn
	defaultLogFormat    = LogFormatText
	defaultEnvFile      = ".env"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var (
	// ErrMissingLLMKey is returned when GROQ_API_KEY is not set
	ErrMissingLLMKey = errors.New("GROQ_API_KEY environment variable is not set")
	// ErrMissingStockKey is returned when the Alpha Vantage key is not set
	ErrMissingStockKey = errors.New("alphavantage_API_KEY environment variable is not set")
)

// Config holds the settings shared by the demos.
type Config struct {
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMTimeout   time.Duration
	LLMMaxTokens int
	Stream       bool

	StockAPIKey  string
	StockBaseURL string
	HTTPTimeout  time.Duration
	HTTPTrace    bool

	LogLevel  slog.Level
	LogFormat LogFormat
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		LLMBaseURL:   defaultLLMBaseURL,
		LLMModel:     defaultLLMModel,
		LLMTimeout:   defaultLLMTimeout,
		LLMMaxTokens: defaultLLMMaxTokens,
		HTTPTimeout:  defaultHTTPTimeout,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

// Load reads .env from the working directory, if present, then the
// environment. Variables already set in the environment take precedence.
func Load() (Config, error) {
	return LoadFile(defaultEnvFile)
}

// LoadFile is Load with an explicit env file.
func LoadFile(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.LLMAPIKey = strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	if cfg.LLMAPIKey == "" {
		return Config{}, ErrMissingLLMKey
	}
	if baseURL := strings.TrimSpace(os.Getenv("LLM_BASE_URL")); baseURL != "" {
		cfg.LLMBaseURL = baseURL
	}
	if model := strings.TrimSpace(os.Getenv("LLM_MODEL")); model != "" {
		cfg.LLMModel = model
	}
	if err := parseDuration("LLM_TIMEOUT", &cfg.LLMTimeout); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("LLM_MAX_TOKENS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse LLM_MAX_TOKENS: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("parse LLM_MAX_TOKENS: value must be > 0")
		}
		cfg.LLMMaxTokens = parsed
	}
	if err := parseBool("LLM_STREAM", &cfg.Stream); err != nil {
		return Config{}, err
	}

	cfg.StockAPIKey = strings.TrimSpace(os.Getenv("alphavantage_API_KEY"))
	if cfg.StockAPIKey == "" {
		cfg.StockAPIKey = strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY"))
	}
	cfg.StockBaseURL = strings.TrimSpace(os.Getenv("ALPHAVANTAGE_URL"))
	if err := parseDuration("HTTP_TIMEOUT", &cfg.HTTPTimeout); err != nil {
		return Config{}, err
	}
	if err := parseBool("HTTP_TRACE", &cfg.HTTPTrace); err != nil {
		return Config{}, err
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		parsed, err := parseLogLevel(level)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = parsed
	}
	if format := strings.TrimSpace(os.Getenv("LOG_FORMAT")); format != "" {
		parsed, err := parseLogFormat(format)
		if err != nil {
			return Config{}, err
		}
		cfg.LogFormat = parsed
	}

	return cfg, nil
}

// RequireStock checks the settings only the stock demo needs.
func (c Config) RequireStock() error {
	if c.StockAPIKey == "" {
		return ErrMissingStockKey
	}
	return nil
}

func parseDuration(name string, dst *time.Duration) error {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if parsed <= 0 {
		return fmt.Errorf("parse %s: value must be > 0", name)
	}
	*dst = parsed
	return nil
}

func parseBool(name string, dst *bool) error {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*dst = parsed
	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	return level, nil
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(raw)) {
	case LogFormatText:
		return LogFormatText, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf("parse LOG_FORMAT: unsupported value %q", raw)
	}
}
