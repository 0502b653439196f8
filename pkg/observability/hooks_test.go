package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type countingHooks struct {
	NoopLayoutHooks
	resizes int
}

func (c *countingHooks) OnResize(string, int, int, bool) { c.resizes++ }

func TestSetLayoutHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingHooks{}
	SetLayoutHooks(h)
	Layout().OnResize("menu", 1, 1, true)

	if h.resizes != 1 {
		t.Errorf("resizes = %d, want 1", h.resizes)
	}
}

func TestSetNilKeepsPrevious(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingHooks{}
	SetLayoutHooks(h)
	SetLayoutHooks(nil)

	if Layout() != LayoutHooks(h) {
		t.Error("SetLayoutHooks(nil) should not replace registered hooks")
	}
}

func TestReset(t *testing.T) {
	SetLayoutHooks(&countingHooks{})
	SetRegistryHooks(NewLogHooks(log.Default()))
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Errorf("Registry() = %T, want NoopRegistryHooks", Registry())
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	
	h.OnCreate("conversation", 3, nil)
	h.OnResize("conversation", 10, 22, false)
	h.OnCapacityExceeded(3, 32)
	h.OnClear("menu", errors.New("display offline"))

	out := buf.String()
	for _, want := range []string{"layout created", "layout resize", "committed=false", "canvas registry full", "display offline"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
