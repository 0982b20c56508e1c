package scrollstage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(ts []*Target) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name)
	}
	return out
}

func TestNewTargetDefaults(t *testing.T) {
	n := NewTarget("hero", Rect{Width: 10, Height: 20}, ".panel.dark", "wide")
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 {
		t.Errorf("identity transform expected, got scale (%v, %v) alpha %v", n.ScaleX, n.ScaleY, n.Alpha)
	}
	if diff := cmp.Diff([]string{"panel", "dark", "wide"}, n.Classes); diff != "" {
		t.Errorf("classes mismatch (-want +got):\n%s", diff)
	}
	if n.ID == 0 {
		t.Error("expected non-zero ID")
	}
}

func TestQuery(t *testing.T) {
	root := NewTarget("root", Rect{})
	a := NewTarget("a", Rect{}, "panel")
	b := NewTarget("b", Rect{}, "panel", "dark")
	c := NewTarget("c", Rect{}, "card")
	d := NewTarget("d", Rect{}, "panel")
	root.AddChild(a)
	a.AddChild(b)
	root.AddChild(c)
	c.AddChild(d)

	tests := []struct {
		selector string
		want     []string
	}{
		{".panel", []string{"a", "b", "d"}},
		{".panel.dark", []string{"b"}},
		{"#c", []string{"c"}},
		{"c", []string{"c"}},
		{".card, #b", []string{"b", "c"}},
		{"*", []string{"a", "b", "c", "d"}},
		{"#root", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := names(root.Query(tt.selector))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Query(%q) mismatch (-want +got):\n%s", tt.selector, diff)
		}
	}
	if root.QueryOne(".missing") != nil {
		t.Error("QueryOne should return nil for no match")
	}
}

func TestValidSelector(t *testing.T) {
	for sel, want := range map[string]bool{
		".panel":         true,
		"#track, .panel": true,
		"*":              true,
		"":               false,
		".":              false,
		"#":              false,
		".panel .child":  false,
		".a..b":          false,
		" , ":            false,
	} {
		if got := validSelector(sel); got != want {
			t.Errorf("validSelector(%q) = %v, want %v", sel, got, want)
		}
	}
}

func TestAddChildReparents(t *testing.T) {
	p1 := NewTarget("p1", Rect{})
	p2 := NewTarget("p2", Rect{})
	c := NewTarget("c", Rect{})
	p1.AddChild(c)
	p2.AddChild(c)
	if c.Parent != p2 || len(p1.Children()) != 0 || len(p2.Children()) != 1 {
		t.Error("child should move to the new parent")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewTarget("a", Rect{})
	b := NewTarget("b", Rect{})
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestDisposeRecursive(t *testing.T) {
	root := NewTarget("root", Rect{})
	a := NewTarget("a", Rect{})
	b := NewTarget("b", Rect{})
	root.AddChild(a)
	a.AddChild(b)

	a.Dispose()
	if !a.IsDisposed() || !b.IsDisposed() {
		t.Error("dispose should reach descendants")
	}
	if len(root.Children()) != 0 {
		t.Error("disposed target should leave its parent")
	}
	if len(root.Query("*")) != 0 {
		t.Error("disposed targets should not be queryable")
	}
	a.Dispose() // no-op
}

func TestDocumentRectIgnoresAnimation(t *testing.T) {
	root := NewTarget("root", Rect{X: 10, Y: 100})
	child := NewTarget("child", Rect{X: 5, Y: 20, Width: 50, Height: 40})
	root.AddChild(child)
	child.X, child.Y, child.XPercent = 30, 30, 50
	root.setPin(true, 200)

	want := Rect{X: 15, Y: 120, Width: 50, Height: 40}
	if got := child.DocumentRect(); got != want {
		t.Errorf("DocumentRect = %+v, want %+v", got, want)
	}
}

func TestScreenRect(t *testing.T) {
	root := NewTarget("root", Rect{})
	track := NewTarget("track", Rect{Y: 500, Width: 300, Height: 100})
	panel := NewTarget("panel", Rect{X: 100, Width: 100, Height: 100})
	root.AddChild(track)
	track.AddChild(panel)

	panel.XPercent = -100
	panel.Y = 10
	panel.Alpha = 0.5
	track.Alpha = 0.5
	track.setPin(true, 200)

	r, alpha := panel.ScreenRect(700)
	want := Rect{X: 0, Y: 500 + 10 + 200 - 700, Width: 100, Height: 100}
	if r != want {
		t.Errorf("ScreenRect = %+v, want %+v", r, want)
	}
	if !approx(alpha, 0.25) {
		t.Errorf("alpha = %v, want 0.25", alpha)
	}

	panel.ScaleX, panel.ScaleY = 2, 0.5
	r, _ = panel.ScreenRect(700)
	want = Rect{X: -50, Y: 10 + 25, Width: 200, Height: 50}
	if r != want {
		t.Errorf("scaled ScreenRect = %+v, want %+v", r, want)
	}
}

func TestContentHeight(t *testing.T) {
	root, _ := stackPage(3, 100, 400)
	if got := root.ContentHeight(); got != 1300 {
		t.Errorf("ContentHeight = %v, want 1300", got)
	}
	deep := NewTarget("deep", Rect{Y: 2000, Height: 10})
	root.Children()[0].AddChild(deep)
	if got := root.ContentHeight(); got != 100+2000+10 {
		t.Errorf("ContentHeight with nested child = %v, want 2110", got)
	}
}

func TestTakeDirty(t *testing.T) {
	n := NewTarget("n", Rect{})
	if !n.TakeDirty() {
		t.Error("new target should start dirty")
	}
	if n.TakeDirty() {
		t.Error("flag should clear")
	}
	n.setPin(true, 5)
	if !n.TakeDirty() {
		t.Error("pin change should dirty the target")
	}
	n.setPin(true, 5)
	if n.TakeDirty() {
		t.Error("unchanged pin should not dirty the target")
	}
}
