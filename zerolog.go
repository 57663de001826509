package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ZerologTelemetry adapts a zerolog.Logger into TelemetryHooks. It is the
// default diagnostic wiring: request outcomes and swallowed flow errors land
// in the logger with their structured fields.
func ZerologTelemetry(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnHTTPResponse: func(ctx context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			evt := logger.Debug()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			if resp != nil {
				evt = evt.Int("status", resp.StatusCode)
			}
			evt.Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("latency", latency).
				Msg("storefront request")
		},
		OnLogEntry: func(ctx context.Context, entry LogEntry) {
			evt := logger.Info()
			if entry.Level == LogLevelError {
				evt = logger.Error()
			}
			evt.Fields(entry.Fields).Msg(entry.Message)
		},
		OnMetric: func(ctx context.Context, metric Metric) {
			evt := logger.Debug().Str("metric", metric.Name).Float64("value", metric.Value)
			for k, v := range metric.Labels {
				evt = evt.Str(k, v)
			}
			evt.Msg("storefront metric")
		},
	}
}
