package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and errors at
// warn level. It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("loading dataset", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, records int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("dataset load failed", "source", source, "err", err)
		return
	}
	h.Logger.Debug("loaded dataset", "source", source, "records", records, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, items int) {
	h.Logger.Debug("layout start", "items", items)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, s LayoutStats, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "err", err)
		return
	}
	h.Logger.Debug("layout complete",
		"items", s.Items, "placed", s.Placed, "dropped", s.Dropped,
		"shrunk", s.Shrunk, "passes", s.Passes, "took", d)
}

func (h *LogHooks) OnWordDropped(_ context.Context, text string, fontSize int) {
	h.Logger.Debug("word dropped", "text", text, "size", fontSize)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request failed", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
