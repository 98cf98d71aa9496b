package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger writing to w, with wall-clock
// timestamps at centisecond resolution ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs one completion line per command with the elapsed time.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs e.g. `INFO converted sample.tsg to gtf elapsed=12ms`.
func (s *stopwatch) done(format string, args ...any) {
	s.logger.Info(fmt.Sprintf(format, args...), "elapsed", time.Since(s.start).Round(time.Millisecond))
}
