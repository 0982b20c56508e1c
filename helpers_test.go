package scrollstage

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"
	"testing"
)

const frameDT = 1.0 / 60

// harness is an engine over manual sources with captured warnings.
type harness struct {
	vp     *ManualViewport
	scroll *ManualScroll
	engine *Engine
	logs   *bytes.Buffer
}

func newHarness(width, height float64) *harness {
	h := &harness{
		vp:     NewManualViewport(width, height),
		scroll: NewManualScroll(),
		logs:   &bytes.Buffer{},
	}
	h.engine = NewEngine(h.vp, h.scroll, Config{Logger: log.New(h.logs, "", 0)})
	return h
}

// frame runs one engine frame.
func (h *harness) frame() { h.engine.Update(frameDT) }

// frames runs n engine frames.
func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.frame()
	}
}

// scrollTo sets the offset and runs the frame that applies it.
func (h *harness) scrollTo(offset float64) {
	h.scroll.SetOffset(offset)
	h.frame()
}

// resize sets the viewport size and runs the frame that applies it.
func (h *harness) resize(width, height float64) {
	h.vp.SetSize(width, height)
	h.frame()
}

// trackPage builds a root holding a track of n viewport-sized panels laid
// out side by side, the shape of a horizontal scrolling section.
func trackPage(n int, vw, vh float64) (root, track *Target, panels []*Target) {
	root = NewTarget("root", Rect{Width: vw, Height: vh * 2})
	track = NewTarget("track", Rect{Width: vw * float64(n), Height: vh})
	root.AddChild(track)
	for i := 0; i < n; i++ {
		p := NewTarget(fmt.Sprintf("panel-%d", i), Rect{X: vw * float64(i), Width: vw, Height: vh}, "panel")
		track.AddChild(p)
		panels = append(panels, p)
	}
	return root, track, panels
}

// stackPage builds a root of n sections stacked vertically, each height
// tall, starting at top.
func stackPage(n int, top, height float64) (root *Target, sections []*Target) {
	root = NewTarget("root", Rect{Width: 1024, Height: top + float64(n)*height})
	for i := 0; i < n; i++ {
		s := NewTarget(fmt.Sprintf("section-%d", i), Rect{Y: top + float64(i)*height, Width: 1024, Height: height}, "section")
		root.AddChild(s)
		sections = append(sections, s)
	}
	return root, sections
}

func mustGroup(t *testing.T, name, query string, rules ...*AnimationRule) *ContextGroup {
	t.Helper()
	g, err := NewContextGroup(name, query, rules...)
	if err != nil {
		t.Fatalf("NewContextGroup(%q): %v", name, err)
	}
	return g
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// expectMisuse runs fn and fails unless it panics with a ProgrammingError
// whose message mentions want.
func expectMisuse(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected ProgrammingError panic, got none")
		}
		pe, ok := r.(*ProgrammingError)
		if !ok {
			t.Fatalf("expected *ProgrammingError, got %T: %v", r, r)
		}
		if !strings.Contains(pe.Error(), want) {
			t.Errorf("panic %q does not mention %q", pe.Error(), want)
		}
	}()
	fn()
}
