// Package router provides the gin middlewares shared by the conversion service:
// request logging through LogHarbour and a per-request deadline.
//
// LogRequest writes one structured entry at the end of each request with the
// method, path, status, client IP, sizes, duration and trace ID. A trace ID is
// generated when the client sends none, and echoed in the X-Trace-ID header.
//
//	lh, _ := logger.LoadLogger("slownie", "info", os.Stdout)
//	r.Use(router.LogRequest(router.NewLogHarbourAdapter(lh)))
//	r.Use(router.TimeoutMiddleware(2 * time.Second))
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/remiges-tech/logharbour/logharbour"
)

// Header and context key carrying the trace ID of a request.
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
	CtxKeyTraceID = "_trace_id"
)

// RequestInfo contains all the information about a request to be logged
type RequestInfo struct {
	Method             string        `json:"method"`                       // HTTP method (e.g., "GET", "POST")
	Path               string        `json:"path"`                         // Request path (e.g., "/users/123")
	ClientIP           string        `json:"client_ip"`                    // Client's IP address
	StatusCode         int           `json:"status_code"`                  // HTTP status code of the response (e.g., 200, 404)
	StartTime          time.Time     `json:"start_time"`                   // Time when request processing started (UTC)
	Duration           time.Duration `json:"duration"`                     // Total duration of request processing
	RequestSize        int64         `json:"request_size"`                 // Size of the request body in bytes
	ResponseSize       int64         `json:"response_size"`                // Size of the response body in bytes
	Query              string        `json:"query,omitempty"`              // Raw query string (e.g., "id=1&name=test")
	UserAgent          string        `json:"user_agent,omitempty"`         // User-Agent header from the request
	Referer            string        `json:"referer,omitempty"`            // Referer header from the request
	TraceID            string        `json:"trace_id,omitempty"`           // Trace ID for distributed tracing
	SpanID             string        `json:"span_id,omitempty"`            // Span ID for distributed tracing
	TimedOut           bool          `json:"timed_out,omitempty"`           // True if request exceeded timeout
	ClientDisconnected bool          `json:"client_disconnected,omitempty"` // True if client closed connection
}

// RequestLogger defines the interface that a logger must implement to be used with LogRequest middleware
type RequestLogger interface {
	Log(info RequestInfo)
}

// LogRequest returns a Gin middleware that hands a RequestInfo to logger once
// the rest of the chain has run.
func LogRequest(logger RequestLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestSize := c.Request.ContentLength

		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		spanID := c.GetHeader(HeaderSpanID)
		c.Set(CtxKeyTraceID, traceID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
		duration := time.Since(startTime)

		// Set by TimeoutMiddleware
		timedOut := c.GetBool(CtxKeyTimedOut)
		clientDisconnected := c.GetBool(CtxKeyClientDisconnected)

		info := RequestInfo{
			Method:             c.Request.Method,
			Path:               c.Request.URL.Path,
			ClientIP:           c.ClientIP(),
			StatusCode:         c.Writer.Status(),
			StartTime:          startTime.UTC(),
			Duration:           duration,
			RequestSize:        requestSize,
			ResponseSize:       int64(c.Writer.Size()),
			Query:              c.Request.URL.RawQuery,
			UserAgent:          c.Request.UserAgent(),
			Referer:            c.Request.Referer(),
			TraceID:            traceID,
			SpanID:             spanID,
			TimedOut:           timedOut,
			ClientDisconnected: clientDisconnected,
		}

		logger.Log(info)
	}
}

// LogHarbourAdapter adapts a LogHarbour logger to implement the RequestLogger interface
type LogHarbourAdapter struct {
	logger *logharbour.Logger
}

// NewLogHarbourAdapter creates a new adapter for a LogHarbour logger
func NewLogHarbourAdapter(logger *logharbour.Logger) *LogHarbourAdapter {
	return &LogHarbourAdapter{
		logger: logger,
	}
}

// Log implements the RequestLogger interface by using LogHarbour's structured logging
func (a *LogHarbourAdapter) Log(info RequestInfo) {
	logger := a.logger.WithModule("http").
		WithOp("request").
		WithRemoteIP(info.ClientIP).
		WithClass(info.Method).
		WithInstanceId(info.Path).
		WithStatus(getStatus(info.StatusCode))

	activityData := map[string]interface{}{
		"method":        info.Method,
		"path":          info.Path,
		"status":        info.StatusCode,
		"start_time":    info.StartTime.Format(time.RFC3339),
		"duration_ms":   info.Duration.Milliseconds(),
		"duration":      info.Duration.String(),
		"request_size":  info.RequestSize,
		"response_size": info.ResponseSize,
		"query":         info.Query,
		"user_agent":    info.UserAgent,
		"referer":       info.Referer,
	}

	if info.TraceID != "" {
		activityData["trace_id"] = info.TraceID
	}

	if info.SpanID != "" {
		activityData["span_id"] = info.SpanID
	}

	if info.TimedOut {
		activityData["timed_out"] = true
	}
	if info.ClientDisconnected {
		activityData["client_disconnected"] = true
	}

	if info.StatusCode >= 500 {
		logger.Warn().LogActivity("HTTP request failed", activityData)
		return
	}
	logger.Info().LogActivity("HTTP request completed", activityData)
}

// getStatus converts an HTTP status code to a logharbour Status
func getStatus(statusCode int) logharbour.Status {
	if statusCode >= 200 && statusCode < 400 {
		return logharbour.Success
	}
	return logharbour.Failure
}
