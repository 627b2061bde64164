package config

import (
    "testing"
    "time"
)

func TestFromEnvDefaults(t *testing.T) {
    for _, key := range []string{
        "EXTRACT_ENGINE", "GEMINI_API_KEY", "GEMINI_MODEL", "PDF_DPI",
        "JPEG_QUALITY", "COLOR_MODE", "INPUT_DIR", "OUTPUT_DIR",
        "REQUEST_TIMEOUT", "LOG_LEVEL", "METRICS_ADDR",
    } {
        t.Setenv(key, "")
    }

    cfg := FromEnv()

    if cfg.Extract.Engine != "gemini" {
        t.Errorf("default engine: got %q", cfg.Extract.Engine)
    }
    if cfg.Extract.GeminiModel != "gemini-1.5-flash" {
        t.Errorf("default gemini model: got %q", cfg.Extract.GeminiModel)
    }
    if cfg.Render.DPI != 200 {
        t.Errorf("default DPI: got %d", cfg.Render.DPI)
    }
    if cfg.Render.JPEGQuality != 85 {
        t.Errorf("default JPEG quality: got %d", cfg.Render.JPEGQuality)
    }
    if cfg.IO.InputDir != "input" || cfg.IO.OutputDir != "output" {
        t.Errorf("default dirs: got %q %q", cfg.IO.InputDir, cfg.IO.OutputDir)
    }
    if cfg.Extract.RequestTimeout != 0 {
        t.Errorf("request timeout should default to disabled, got %v", cfg.Extract.RequestTimeout)
    }
    if cfg.Logging.Level != "info" {
        t.Errorf("default log level: got %q", cfg.Logging.Level)
    }
}

func TestFromEnvOverrides(t *testing.T) {
    t.Setenv("PDF_DPI", "300")
    t.Setenv("EXTRACT_ENGINE", "openai")
    t.Setenv("REQUEST_TIMEOUT", "45s")
    t.Setenv("COLOR_MODE", "gray")

    cfg := FromEnv()

    if cfg.Render.DPI != 300 {
        t.Errorf("DPI override: got %d", cfg.Render.DPI)
    }
    if cfg.Extract.Engine != "openai" {
        t.Errorf("engine override: got %q", cfg.Extract.Engine)
    }
    if cfg.Extract.RequestTimeout != 45*time.Second {
        t.Errorf("timeout override: got %v", cfg.Extract.RequestTimeout)
    }
    if cfg.Render.ColorMode != "gray" {
        t.Errorf("color mode override: got %q", cfg.Render.ColorMode)
    }
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
    t.Setenv("PDF_DPI", "not-a-number")
    t.Setenv("REQUEST_TIMEOUT", "soon")

    cfg := FromEnv()

    if cfg.Render.DPI != 200 {
        t.Errorf("bad DPI should fall back to default, got %d", cfg.Render.DPI)
    }
    if cfg.Extract.RequestTimeout != 0 {
        t.Errorf("bad timeout should fall back to disabled, got %v", cfg.Extract.RequestTimeout)
    }
}

func TestValidate(t *testing.T) {
    t.Setenv("EXTRACT_ENGINE", "")
    t.Setenv("OPENAI_API_KEY", "")
    t.Setenv("PDF_DPI", "")

    t.Run("missing gemini key", func(t *testing.T) {
        t.Setenv("GEMINI_API_KEY", "")
        if err := FromEnv().Validate(); err == nil {
            t.Error("expected error for missing key")
        }
    })

    t.Run("placeholder gemini key", func(t *testing.T) {
        t.Setenv("GEMINI_API_KEY", "your_api_key_here")
        if err := FromEnv().Validate(); err == nil {
            t.Error("expected error for placeholder key")
        }
    })

    t.Run("valid gemini key", func(t *testing.T) {
        t.Setenv("GEMINI_API_KEY", "real-key")
        if err := FromEnv().Validate(); err != nil {
            t.Errorf("unexpected error: %v", err)
        }
    })

    t.Run("unknown engine", func(t *testing.T) {
        t.Setenv("GEMINI_API_KEY", "real-key")
        t.Setenv("EXTRACT_ENGINE", "palm")
        if err := FromEnv().Validate(); err == nil {
            t.Error("expected error for unknown engine")
        }
    })

    t.Run("openai engine needs its key", func(t *testing.T) {
        t.Setenv("EXTRACT_ENGINE", "openai")
        t.Setenv("OPENAI_API_KEY", "")
        if err := FromEnv().Validate(); err == nil {
            t.Error("expected error for missing OPENAI_API_KEY")
        }
        t.Setenv("OPENAI_API_KEY", "sk-test")
        if err := FromEnv().Validate(); err != nil {
            t.Errorf("unexpected error: %v", err)
        }
    })
}
