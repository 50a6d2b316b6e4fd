package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
)

// MetricsRecorder is the subset of the CloudWatch metrics client the
// middleware needs; satisfied by *aws_pkg.MetricsClient.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, name string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, name string, duration time.Duration, dimensions map[string]string) error
}

// MetricsMiddleware records request count, latency and error counters
// per route. Publication happens off the request goroutine so a slow
// CloudWatch call never delays the response.
func MetricsMiddleware(rec MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rec == nil || !rec.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  method,
			"Path":    path,
			"Status":  statusRange(status),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = rec.RecordCount(ctx, aws_pkg.MetricHTTPRequests, dimensions)
			_ = rec.RecordLatency(ctx, aws_pkg.MetricHTTPLatency, duration, dimensions)

			if status >= 400 {
				_ = rec.RecordCount(ctx, aws_pkg.MetricHTTPErrors, dimensions)
				if status < 500 {
					_ = rec.RecordCount(ctx, aws_pkg.MetricHTTP4xx, dimensions)
				} else {
					_ = rec.RecordCount(ctx, aws_pkg.MetricHTTP5xx, dimensions)
				}
			}
		}()
	}
}

func statusRange(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
