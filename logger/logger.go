// Package logger builds the LogHarbour logger shared by the service and
// its middleware.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/remiges-tech/logharbour/logharbour"
)

// DefaultPriority is used when no priority is configured.
const DefaultPriority = "info"

// newContext returns a logger context for a priority name such as
// "debug2", "info" or "warn".
func newContext(priority string) (*logharbour.LoggerContext, error) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "debug2":
		return logharbour.NewLoggerContext(logharbour.Debug2), nil
	case "debug1":
		return logharbour.NewLoggerContext(logharbour.Debug1), nil
	case "debug0":
		return logharbour.NewLoggerContext(logharbour.Debug0), nil
	case "", "info":
		return logharbour.NewLoggerContext(logharbour.Info), nil
	case "warn":
		return logharbour.NewLoggerContext(logharbour.Warn), nil
	case "err", "error":
		return logharbour.NewLoggerContext(logharbour.Err), nil
	case "crit":
		return logharbour.NewLoggerContext(logharbour.Crit), nil
	default:
		return nil, fmt.Errorf("unknown log priority %q", priority)
	}
}

// LoadLogger creates a LogHarbour logger for appName writing to w, or to
// stdout when w is nil.
func LoadLogger(appName, priority string, w io.Writer) (*logharbour.Logger, error) {
	lctx, err := newContext(priority)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stdout
	}
	return logharbour.NewLogger(lctx, appName, w), nil
}
