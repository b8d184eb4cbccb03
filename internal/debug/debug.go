package debug

import (
	"fmt"
	"log"
	"time"
)

// Logf prints a timestamped trace line if tracing is enabled. Resolution
// stages use this to narrate narrowing decisions without a logger dependency.
func Logf(enabled bool, format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Timing logs the duration of an operation if tracing is enabled. Call the
// returned function when the operation completes.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Logf(enabled, "starting: %s", operation)

	return func() {
		Logf(enabled, "completed: %s (took %v)", operation, time.Since(start))
	}
}
