package metrics

import (
    "net/http"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    providerReqs = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "tabletitles",
            Name:      "provider_requests_total",
            Help:      "Total provider requests by provider, model and result",
        },
        []string{"provider", "model", "result"},
    )

    providerLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "tabletitles",
            Name:      "provider_request_duration_seconds",
            Help:      "Duration of provider requests by provider and model",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"provider", "model"},
    )

    pagesProcessed = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "tabletitles",
            Name:      "pages_processed_total",
            Help:      "Total pages processed by result (extracted, unrecognized)",
        },
        []string{"result"},
    )

    filesProcessed = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "tabletitles",
            Name:      "files_processed_total",
            Help:      "Total PDF files processed by result (success, render_error)",
        },
        []string{"result"},
    )

    tablesFound = prometheus.NewCounter(
        prometheus.CounterOpts{
            Namespace: "tabletitles",
            Name:      "tables_found_total",
            Help:      "Total tables reported by the model across all pages",
        },
    )

    renderLatency = prometheus.NewHistogram(
        prometheus.HistogramOpts{
            Namespace: "tabletitles",
            Name:      "page_render_duration_seconds",
            Help:      "Duration of page rasterization",
            Buckets:   prometheus.DefBuckets,
        },
    )
)

// Init registers collectors.
func Init() {
    prometheus.MustRegister(providerReqs, providerLatency, pagesProcessed, filesProcessed, tablesFound, renderLatency)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveProvider(provider, model, result string, dur time.Duration) {
    providerReqs.WithLabelValues(provider, model, result).Inc()
    providerLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}

func IncPage(result string)      { pagesProcessed.WithLabelValues(result).Inc() }
func IncFile(result string)      { filesProcessed.WithLabelValues(result).Inc() }
func AddTables(n int)            { tablesFound.Add(float64(n)) }
func ObserveRender(d time.Duration) { renderLatency.Observe(d.Seconds()) }
