package config

import (
    "errors"
    "os"
    "strconv"
    "strings"
    "time"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
    Level      string
    Pretty     bool
    File       string
    MaxSizeMB  int
    MaxBackups int
    MaxAgeDays int
    Compress   bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
    Send          bool
    APIKey        string
    OrgID         string
    Dataset       string
    FlushInterval time.Duration
}

// ExtractConfig defines the vision engine and models used for title extraction.
type ExtractConfig struct {
    Engine         string // "gemini"|"openai"|"anthropic"
    GeminiAPIKey   string
    GeminiModel    string
    OpenAIModel    string
    AnthropicModel string
    RequestTimeout time.Duration // 0 disables the timeout
}

// RenderConfig defines page rasterization parameters.
type RenderConfig struct {
    DPI         int
    JPEGQuality int
    ColorMode   string // "rgb"|"gray"
}

// IOConfig defines input and output locations.
type IOConfig struct {
    InputDir  string
    OutputDir string
}

// MetricsConfig defines the optional Prometheus listener.
type MetricsConfig struct {
    Addr string // empty disables the listener
}

// Config is the top-level configuration.
type Config struct {
    Logging LoggingConfig
    Axiom   AxiomConfig
    Extract ExtractConfig
    Render  RenderConfig
    IO      IOConfig
    Metrics MetricsConfig
}

const apiKeyPlaceholder = "your_api_key_here"

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
    cfg := Config{}

    // Logging defaults
    cfg.Logging = LoggingConfig{
        Level:      getEnv("LOG_LEVEL", "info"),
        Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
        File:       getEnv("LOG_FILE", "logs/tabletitles.log"),
        MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
        MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
        MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
        Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
    }

    // Axiom defaults
    baseDataset := getEnv("AXIOM_DATASET", "dev")
    cfg.Axiom = AxiomConfig{
        Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
        APIKey:        getEnv("AXIOM_API_KEY", ""),
        OrgID:         getEnv("AXIOM_ORG_ID", ""),
        Dataset:       baseDataset + "_tabletitles",
        FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
    }

    // Extraction defaults
    cfg.Extract = ExtractConfig{
        Engine:         getEnv("EXTRACT_ENGINE", "gemini"),
        GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
        GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
        OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
        AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
        RequestTimeout: parseDuration(getEnv("REQUEST_TIMEOUT", ""), 0),
    }

    // Render defaults
    cfg.Render = RenderConfig{
        DPI:         parseInt(getEnv("PDF_DPI", "200"), 200),
        JPEGQuality: parseInt(getEnv("JPEG_QUALITY", "85"), 85),
        ColorMode:   getEnv("COLOR_MODE", "rgb"),
    }

    // IO defaults
    cfg.IO = IOConfig{
        InputDir:  getEnv("INPUT_DIR", "input"),
        OutputDir: getEnv("OUTPUT_DIR", "output"),
    }

    cfg.Metrics = MetricsConfig{Addr: getEnv("METRICS_ADDR", "")}

    return cfg
}

// Validate checks that the configured engine has a usable API key.
func (c Config) Validate() error {
    switch c.Extract.Engine {
    case "gemini":
        if c.Extract.GeminiAPIKey == "" {
            return errors.New("GEMINI_API_KEY not set; create a .env file with your API key (see .env.example)")
        }
        if c.Extract.GeminiAPIKey == apiKeyPlaceholder {
            return errors.New("GEMINI_API_KEY still contains the placeholder value; replace it with a real key")
        }
    case "openai":
        if os.Getenv("OPENAI_API_KEY") == "" {
            return errors.New("OPENAI_API_KEY not set")
        }
    case "anthropic":
        if os.Getenv("ANTHROPIC_API_KEY") == "" {
            return errors.New("ANTHROPIC_API_KEY not set")
        }
    default:
        return errors.New("unknown EXTRACT_ENGINE: " + c.Extract.Engine)
    }
    if c.Render.DPI <= 0 {
        return errors.New("PDF_DPI must be positive")
    }
    return nil
}

// Helpers
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func parseInt(s string, def int) int {
    if s == "" { return def }
    if n, err := strconv.Atoi(s); err == nil { return n }
    return def
}

func parseBool(s string) bool {
    v := strings.ToLower(strings.TrimSpace(s))
    return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
    if s == "" { return def }
    if d, err := time.ParseDuration(s); err == nil { return d }
    return def
}

func devDefaultPretty() string {
    env := strings.ToLower(os.Getenv("ENVIRONMENT"))
    if env == "dev" || env == "development" || env == "local" { return "true" }
    return "false"
}
