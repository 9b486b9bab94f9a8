package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event at debug level on a charmbracelet logger.
// It implements all three hook sets.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to the default logger when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, samples int) {
	h.logger.Debug("layout start", "samples", samples)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, samples int, d time.Duration, err error) {
	h.done("layout", d, err, "samples", samples)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
