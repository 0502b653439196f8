package observability

import "github.com/charmbracelet/log"

// LogHooks forwards layout and registry events to a structured logger at
// debug level. It implements both LayoutHooks and RegistryHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnCreate(kind string, canvases int, err error) {
	if err != nil {
		h.Logger.Error("layout create failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("layout created", "kind", kind, "canvases", canvases)
}

func (h *LogHooks) OnClear(kind string, err error) {
	if err != nil {
		h.Logger.Error("layout clear failed", "kind", kind, "err", err)
		return
	}
	h.Logger.Debug("layout cleared", "kind", kind)
}

func (h *LogHooks) OnResize(kind string, requested, applied int, committed bool) {
	h.Logger.Debug("layout resize", "kind", kind, "requested", requested, "applied", applied, "committed", committed)
}

func (h *LogHooks) OnInsert(added, size int) {
	h.Logger.Debug("canvases registered", "added", added, "size", size)
}

func (h *LogHooks) OnCapacityExceeded(requested, capacity int) {
	h.Logger.Warn("canvas registry full", "requested", requested, "capacity", capacity)
}

var (
	_ LayoutHooks   = (*LogHooks)(nil)
	_ RegistryHooks = (*LogHooks)(nil)
)
