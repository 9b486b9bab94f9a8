package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a charmbracelet logger stamping lines as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command and logs its total duration when done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with an "elapsed" field, plus any extra
// key/value pairs.
func (p *progress) done(msg string, kv ...any) {
	kv = append(kv, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, kv...)
}
