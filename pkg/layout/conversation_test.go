package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
)

func newConversation(t *testing.T, m gfx.Metrics, trust canvas.Trust) (*ConversationLayout, testEnv) {
	t.Helper()
	env := newTestEnv(t, m, canvas.DefaultCapacity)
	l, err := NewConversation(env.Env, trust)
	if err != nil {
		t.Fatalf("NewConversation() error: %v", err)
	}
	return l, env
}

func TestConversationInitialGeometry(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)
	reg := env.Registry

	predID, ok := l.PredictionCanvas()
	if !ok {
		t.Fatal("PredictionCanvas() should be present")
	}
	inputID, ok := l.InputCanvas()
	if !ok {
		t.Fatal("InputCanvas() should be present")
	}

	tests := []struct {
		name string
		id   canvas.ID
		want geom.Rectangle
	}{
		{"predictive", predID, geom.Rect(0, 514, 336, 536)},
		{"input", inputID, geom.Rect(0, 492, 336, 514)},
		{"content", l.ContentCanvas(), geom.Rect(0, statusHeight, 336, 492)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustGet(t, reg, tt.id)
			if c.Rect() != tt.want {
				t.Errorf("rect = %v, want %v", c.Rect(), tt.want)
			}
			if c.Clip() != c.Rect() {
				t.Errorf("initial clip %v differs from rect %v", c.Clip(), c.Rect())
			}
		})
	}

	if l.MinInputHeight() != 22 {
		t.Errorf("MinInputHeight() = %d, want 22", l.MinInputHeight())
	}
	if len(env.rec.Fills) != 0 {
		t.Error("creation should not paint")
	}
}

func TestConversationTiling(t *testing.T) {
	screens := []gfx.Metrics{
		gfx.DefaultMetrics,
		{Width: 240, Height: 320, SmallLineHeight: 10, RegularLineHeight: 12},
		{Width: 800, Height: 480, SmallLineHeight: 16, RegularLineHeight: 24},
		{Width: 64, Height: 200, SmallLineHeight: 6, RegularLineHeight: 7},
	}

	for _, m := range screens {
		l, env := newConversation(t, m, 255)
		regions, err := l.Regions(env.Registry)
		if err != nil {
			t.Fatal(err)
		}
		ids := make([]canvas.ID, len(regions))
		below := geom.Rect(0, statusHeight, m.Width, m.Height)
		area := 0
		for i, r := range regions {
			ids[i] = r.ID
			area += r.Clip.Area()
			if !below.Contains(r.Clip) {
				t.Errorf("%dx%d: %s %v escapes %v", m.Width, m.Height, r.Role, r.Clip, below)
			}
		}
		if err := env.Registry.CheckDisjoint(ids...); err != nil {
			t.Errorf("%dx%d: %v", m.Width, m.Height, err)
		}
		if area != below.Area() {
			t.Errorf("%dx%d: canvases cover %d px, want %d", m.Width, m.Height, area, below.Area())
		}
	}
}

func TestConversationTrust(t *testing.T) {
	for _, base := range []canvas.Trust{0, 1, 7, 128, 254, 255} {
		l, env := newConversation(t, gfx.DefaultMetrics, base)
		inputID, _ := l.InputCanvas()
		predID, _ := l.PredictionCanvas()

		if got := mustGet(t, env.Registry, l.ContentCanvas()).Trust(); got != base/2 {
			t.Errorf("base %d: content trust = %d, want %d", base, got, base/2)
		}
		for _, id := range []canvas.ID{inputID, predID} {
			if got := mustGet(t, env.Registry, id).Trust(); got != base {
				t.Errorf("base %d: trust = %d, want %d", base, got, base)
			}
		}
	}
}

func TestConversationCreateCapacity(t *testing.T) {
	env := newTestEnv(t, gfx.DefaultMetrics, 3) // status + two free slots
	before := env.Registry.Snapshot()

	_, err := NewConversation(env.Env, 10)
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Fatalf("error = %v, want CAPACITY_EXCEEDED", err)
	}
	if !reflect.DeepEqual(env.Registry.Snapshot(), before) {
		t.Error("failed create left canvases in the registry")
	}
}

func TestConversationDegenerate(t *testing.T) {
	tests := []struct {
		name string
		m    gfx.Metrics
	}{
		{"no width", gfx.Metrics{Width: 0, Height: 536, SmallLineHeight: 12, RegularLineHeight: 14}},
		{"no room for content", gfx.Metrics{Width: 336, Height: 60, SmallLineHeight: 12, RegularLineHeight: 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, gfx.Metrics{Width: 336, Height: 536}, 8)
			env.rec.Metrics = tt.m
			if _, err := NewConversation(env.Env, 10); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
				t.Errorf("error = %v, want DEGENERATE_GEOMETRY", err)
			}
			if env.Registry.Len() != 1 {
				t.Errorf("registry Len() = %d, want 1", env.Registry.Len())
			}
		})
	}
}

func TestConversationClearOrder(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)
	if err := l.Clear(env.Surface, env.Registry); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	inputID, _ := l.InputCanvas()
	predID, _ := l.PredictionCanvas()
	want := []gfx.Fill{
		{Rect: mustGet(t, env.Registry, l.ContentCanvas()).Clip(), Color: gfx.Light},
		{Rect: mustGet(t, env.Registry, predID).Clip(), Color: gfx.Light},
		{Rect: mustGet(t, env.Registry, inputID).Clip(), Color: gfx.Light},
	}
	if !reflect.DeepEqual(env.rec.Fills, want) {
		t.Errorf("fills = %v, want %v", env.rec.Fills, want)
	}
}

func TestConversationClearBackendFailure(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)
	env.rec.FailAfter(1)

	err := l.Clear(env.Surface, env.Registry)
	if !errors.Is(err, errors.ErrCodeBackendFailure) {
		t.Errorf("Clear() error = %v, want BACKEND_FAILURE", err)
	}
}

func TestConversationResizeCommit(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)
	inputID, _ := l.InputCanvas()
	predID, _ := l.PredictionCanvas()
	predBefore := mustGet(t, env.Registry, predID)

	br, err := l.Resize(env.Surface, 100, env.Status, env.Registry)
	if err != nil {
		t.Fatalf("Resize() error: %v", err)
	}

	wantInput := geom.Rect(0, 414, 336, 514)
	wantContent := geom.Rect(0, statusHeight, 336, 414)
	if br != wantContent.BR {
		t.Errorf("Resize() = %v, want %v", br, wantContent.BR)
	}

	input := mustGet(t, env.Registry, inputID)
	content := mustGet(t, env.Registry, l.ContentCanvas())
	if input.Clip() != wantInput {
		t.Errorf("input clip = %v, want %v", input.Clip(), wantInput)
	}
	if content.Clip() != wantContent {
		t.Errorf("content clip = %v, want %v", content.Clip(), wantContent)
	}
	if input.Rect() != geom.Rect(0, 492, 336, 514) {
		t.Error("resize must not change the allocation rectangle")
	}
	if mustGet(t, env.Registry, predID) != predBefore {
		t.Error("resize must not touch the predictive canvas")
	}

	want := []gfx.Fill{{Rect: wantInput, Color: gfx.Light}, {Rect: wantContent, Color: gfx.Light}}
	if !reflect.DeepEqual(env.rec.Fills, want) {
		t.Errorf("fills = %v, want %v", env.rec.Fills, want)
	}

	if err := env.Registry.CheckDisjoint(inputID, predID, l.ContentCanvas()); err != nil {
		t.Error(err)
	}
}

func TestConversationResizeFloor(t *testing.T) {
	for _, h := range []int{-50, 0, 1, 10, 21, 22} {
		a, envA := newConversation(t, gfx.DefaultMetrics, 200)
		b, envB := newConversation(t, gfx.DefaultMetrics, 200)

		gotA, errA := a.Resize(envA.Surface, h, envA.Status, envA.Registry)
		gotB, errB := b.Resize(envB.Surface, a.MinInputHeight(), envB.Status, envB.Registry)
		if errA != nil || errB != nil {
			t.Fatalf("h=%d: errors %v, %v", h, errA, errB)
		}
		if gotA != gotB {
			t.Errorf("h=%d: Resize() = %v, Resize(min) = %v", h, gotA, gotB)
		}
		regA, _ := a.Regions(envA.Registry)
		regB, _ := b.Regions(envB.Registry)
		for i := range regA {
			if regA[i].Clip != regB[i].Clip {
				t.Errorf("h=%d: %s clip %v, want %v", h, regA[i].Role, regA[i].Clip, regB[i].Clip)
			}
		}
		if !reflect.DeepEqual(envA.rec.Fills, envB.rec.Fills) {
			t.Errorf("h=%d: paint differs from Resize(min)", h)
		}
	}
}

func TestConversationResizeReject(t *testing.T) {
	// Content spans from y=32 to 514-h, so it is 64 px or less once h >= 418.
	for _, h := range []int{418, 419, 450, 482, 1000} {
		l, env := newConversation(t, gfx.DefaultMetrics, 200)
		inputID, _ := l.InputCanvas()

		// Move away from the initial geometry first so "unchanged" is meaningful.
		if _, err := l.Resize(env.Surface, 60, env.Status, env.Registry); err != nil {
			t.Fatal(err)
		}
		env.rec.Reset()
		before := env.Registry.Snapshot()
		inputBR := mustGet(t, env.Registry, inputID).Clip().BR

		got, err := l.Resize(env.Surface, h, env.Status, env.Registry)
		if err != nil {
			t.Fatalf("h=%d: Resize() error: %v", h, err)
		}
		if got != inputBR {
			t.Errorf("h=%d: Resize() = %v, want input corner %v", h, got, inputBR)
		}
		if !reflect.DeepEqual(env.Registry.Snapshot(), before) {
			t.Errorf("h=%d: rejected resize changed the registry", h)
		}
		if len(env.rec.Fills) != 0 {
			t.Errorf("h=%d: rejected resize painted %d rectangles", h, len(env.rec.Fills))
		}
	}
}

func TestConversationResizeBoundary(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)

	// 65 px of content is accepted.
	got, err := l.Resize(env.Surface, 417, env.Status, env.Registry)
	if err != nil {
		t.Fatal(err)
	}
	if want := geom.Pt(336, statusHeight+65); got != want {
		t.Errorf("Resize(417) = %v, want %v", got, want)
	}

	// 64 px is not.
	inputID, _ := l.InputCanvas()
	got, err = l.Resize(env.Surface, 418, env.Status, env.Registry)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustGet(t, env.Registry, inputID).Clip().BR; got != want {
		t.Errorf("Resize(418) = %v, want %v", got, want)
	}
	if h := mustGet(t, env.Registry, l.ContentCanvas()).Clip().Height(); h != 65 {
		t.Errorf("content height = %d, want 65", h)
	}
}

func TestConversationResizeBackendFailureRollsBack(t *testing.T) {
	for _, allowed := range []int{0, 1} {
		l, env := newConversation(t, gfx.DefaultMetrics, 200)
		before := env.Registry.Snapshot()
		env.rec.FailAfter(allowed)

		_, err := l.Resize(env.Surface, 80, env.Status, env.Registry)
		if !errors.Is(err, errors.ErrCodeBackendFailure) {
			t.Fatalf("allowed=%d: error = %v, want BACKEND_FAILURE", allowed, err)
		}
		if !reflect.DeepEqual(env.Registry.Snapshot(), before) {
			t.Errorf("allowed=%d: failed repaint left clip rectangles changed", allowed)
		}
	}
}

func TestConversationNotFound(t *testing.T) {
	l, env := newConversation(t, gfx.DefaultMetrics, 200)
	other := canvas.NewRegistry(4)

	if _, err := l.Resize(env.Surface, 40, env.Status, other); !errors.Fatal(err) {
		t.Errorf("Resize() on foreign registry error = %v, want fatal NOT_FOUND", err)
	}
	if err := l.Clear(env.Surface, other); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Clear() on foreign registry error = %v, want NOT_FOUND", err)
	}
	if _, err := l.Regions(other); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Regions() on foreign registry error = %v, want NOT_FOUND", err)
	}
}
