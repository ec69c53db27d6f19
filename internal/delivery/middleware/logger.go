package middleware

import (
	"log/slog"
	"time"

	"hbnb/config"
	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware records every request in the HTTP metrics and, in debug
// mode, writes an access log line through the request-scoped logger.
type LoggerMiddleware struct {
	logger  *slog.Logger
	metrics *metrics.HTTPMetrics
	debug   bool
}

// NewLoggerMiddleware creates a new logger middleware. m may be nil.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config, m *metrics.HTTPMetrics) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:  logger,
		metrics: m,
		debug:   cfg.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Let the error handler write the response so the status is final.
			c.Error(err)
		}

		latency := time.Since(start)
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveRequest(c.Request().Method, route, c.Response().Status, latency)

		if m.debug {
			m.logRequest(c, route, latency, err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, route string, latency time.Duration, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", route),
		slog.Int("status", res.Status),
		slog.Int64("bytes_out", res.Size),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if res.Status >= 400 {
		logLevel = slog.LevelWarn
	}
	if res.Status >= 500 {
		logLevel = slog.LevelError
	}

	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).LogAttrs(req.Context(), logLevel, "HTTP Request", fields...)
}
