package main

import (
    "context"
    "net/http"
    "os"
    "time"

    "github.com/google/uuid"
    "github.com/joho/godotenv"
    "github.com/rs/zerolog/log"

    "github.com/local/tabletitles/internal/ai"
    cfgpkg "github.com/local/tabletitles/internal/config"
    "github.com/local/tabletitles/internal/filetype"
    logpkg "github.com/local/tabletitles/internal/logger"
    "github.com/local/tabletitles/internal/metrics"
    "github.com/local/tabletitles/internal/output"
    "github.com/local/tabletitles/internal/pipeline"
    "github.com/local/tabletitles/internal/render"
)

func main() {
    // Load .env if present; real environment wins
    _ = godotenv.Load()

    cfg := cfgpkg.FromEnv()

    // Init logging
    _ = logpkg.Init(logpkg.Options{
        Level: cfg.Logging.Level,
        Pretty: cfg.Logging.Pretty,
        File: cfg.Logging.File,
        MaxSizeMB: cfg.Logging.MaxSizeMB,
        MaxBackups: cfg.Logging.MaxBackups,
        MaxAgeDays: cfg.Logging.MaxAgeDays,
        Compress: cfg.Logging.Compress,
        SendToAxiom: cfg.Axiom.Send && cfg.Axiom.APIKey != "",
        AxiomAPIKey: cfg.Axiom.APIKey,
        AxiomOrgID: cfg.Axiom.OrgID,
        AxiomDataset: cfg.Axiom.Dataset,
        AxiomFlush: cfg.Axiom.FlushInterval,
    })
    defer logpkg.Close()

    if err := cfg.Validate(); err != nil {
        log.Fatal().Err(err).Msg("invalid configuration")
    }

    metrics.Init()
    if cfg.Metrics.Addr != "" {
        mux := http.NewServeMux()
        mux.Handle("/metrics", metrics.Handler())
        go func() {
            log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listener started")
            if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
                log.Error().Err(err).Msg("metrics listener failed")
            }
        }()
    }

    client, model := buildClient(cfg)

    runID := uuid.NewString()
    runLog := logpkg.WithRun(runID)
    runLog.Info().
        Str("engine", client.Name()).
        Str("model", model).
        Int("dpi", cfg.Render.DPI).
        Str("input", cfg.IO.InputDir).
        Str("output", cfg.IO.OutputDir).
        Msg("starting table title extraction run")

    driver := pipeline.New(pipeline.Dependencies{
        Opener: &render.FitzOpener{
            DPI:         cfg.Render.DPI,
            JPEGQuality: cfg.Render.JPEGQuality,
            ColorMode:   render.ColorMode(cfg.Render.ColorMode),
        },
        Client:   client,
        Detector: filetype.New(),
    }, model, cfg.Extract.RequestTimeout, runLog)

    start := time.Now()
    results, err := driver.Run(context.Background(), cfg.IO.InputDir)
    if err != nil {
        runLog.Error().Err(err).Msg("run aborted")
        logpkg.Close()
        os.Exit(1)
    }

    if _, _, err := output.Write(cfg.IO.OutputDir, results); err != nil {
        runLog.Error().Err(err).Msg("failed to write output files")
        logpkg.Close()
        os.Exit(1)
    }

    runLog.Info().
        Int("results", len(results)).
        Dur("duration", time.Since(start)).
        Msg("run complete")
}

// buildClient selects the vision engine from config.
func buildClient(cfg cfgpkg.Config) (ai.Client, string) {
    switch cfg.Extract.Engine {
    case "openai":
        return ai.NewOpenAIClient(), cfg.Extract.OpenAIModel
    case "anthropic":
        return ai.NewAnthropicClient(), cfg.Extract.AnthropicModel
    default:
        return ai.NewGeminiClient(cfg.Extract.GeminiAPIKey), cfg.Extract.GeminiModel
    }
}
