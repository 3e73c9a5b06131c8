package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowOperationThreshold is the duration above which OperationTimer warns.
const SlowOperationThreshold = 5 * time.Second

// OperationTimer provides a defer-friendly way to measure an operation.
// The returned func logs the duration at debug level, or at warn level when
// it exceeds SlowOperationThreshold, and returns it.
//
// Usage:
//
//	stop := utils.OperationTimer("load_dataset", log)
//	defer stop()
func OperationTimer(operation string, log zerolog.Logger) func() time.Duration {
	start := time.Now()

	return func() time.Duration {
		duration := time.Since(start)

		event := log.Debug()
		if duration > SlowOperationThreshold {
			event = log.Warn()
		}
		event.
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("Operation completed")

		return duration
	}
}
