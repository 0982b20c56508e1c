package scrollstage

import "strings"

// targetIDCounter is a plain counter; scrollstage is single-threaded.
var targetIDCounter uint32

func nextTargetID() uint32 {
	targetIDCounter++
	return targetIDCounter
}

// Target is an animatable element of a page. Targets form a tree rooted at the
// scope element handed to Engine.Mount; selectors in rules only ever resolve
// among the descendants of that root.
//
// Layout is the element's natural box relative to its parent and is never
// touched by animation. The animated fields are offsets on top of it, the
// way CSS transforms sit on top of document flow.
type Target struct {
	// Identity
	ID      uint32
	Name    string
	Classes []string

	// Hierarchy
	Parent   *Target
	children []*Target

	// Natural layout box, relative to Parent.
	Layout Rect

	// Animated properties. X/Y are pixel translations, XPercent/YPercent are
	// translations in percent of the layout size.
	X, Y               float64
	XPercent, YPercent float64
	Alpha              float64
	ScaleX, ScaleY     float64
	Rotation           float64

	// Presentation for the bundled runners.
	Label string
	Color Color

	pinY     float64
	pinned   bool
	dirty    bool
	disposed bool
}

// NewTarget creates a target with identity transform and full opacity.
// Classes may be given as ".a.b" style or plain names.
func NewTarget(name string, layout Rect, classes ...string) *Target {
	t := &Target{
		ID:     nextTargetID(),
		Name:   name,
		Layout: layout,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
		Color:  ColorWhite,
		dirty:  true,
	}
	for _, c := range classes {
		t.AddClass(c)
	}
	return t
}

// AddClass adds one or more classes. A leading or embedded "." separates
// class names, so ".panel.dark" adds two classes.
func (t *Target) AddClass(class string) {
	for _, c := range strings.Split(class, ".") {
		c = strings.TrimSpace(c)
		if c == "" || t.HasClass(c) {
			continue
		}
		t.Classes = append(t.Classes, c)
	}
}

// HasClass reports whether the target carries the given class.
func (t *Target) HasClass(class string) bool {
	for _, c := range t.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// --- Tree manipulation ---

// AddChild appends child to this target's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this target (cycle).
func (t *Target) AddChild(child *Target) {
	if child == nil {
		panic("scrollstage: cannot add nil child")
	}
	if isAncestor(child, t) {
		panic("scrollstage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = t
	t.children = append(t.children, child)
	child.MarkDirty()
}

// RemoveChild detaches child from this target.
// Panics if child.Parent != t.
func (t *Target) RemoveChild(child *Target) {
	if child.Parent != t {
		panic("scrollstage: child's parent is not this target")
	}
	t.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this target from its parent.
// No-op if this target has no parent.
func (t *Target) RemoveFromParent() {
	if t.Parent == nil {
		return
	}
	t.Parent.RemoveChild(t)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (t *Target) Children() []*Target {
	return t.children
}

// --- Disposal ---

// Dispose removes this target from its parent, marks it as disposed,
// and recursively disposes all descendants. Timelines stop writing to
// disposed targets.
func (t *Target) Dispose() {
	if t.disposed {
		return
	}
	t.RemoveFromParent()
	t.dispose()
}

func (t *Target) dispose() {
	t.disposed = true
	t.ID = 0
	for _, child := range t.children {
		child.Parent = nil
		child.dispose()
	}
	t.children = nil
	t.Parent = nil
}

// IsDisposed returns true if this target has been disposed.
func (t *Target) IsDisposed() bool {
	return t.disposed
}

// MarkDirty flags the target for redraw.
func (t *Target) MarkDirty() {
	t.dirty = true
}

// TakeDirty reports whether the target changed since the last call and
// clears the flag.
func (t *Target) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

// --- Selectors ---

// Query returns the descendants of t matching selector, in document order.
// A selector is a comma separated list of ".class", "#name", "name" or "*".
// The receiver itself never matches.
func (t *Target) Query(selector string) []*Target {
	parts := splitSelector(selector)
	if len(parts) == 0 {
		return nil
	}
	var out []*Target
	var walk func(n *Target)
	walk = func(n *Target) {
		for _, c := range n.children {
			for _, p := range parts {
				if matchSelector(c, p) {
					out = append(out, c)
					break
				}
			}
			walk(c)
		}
	}
	walk(t)
	return out
}

// QueryOne returns the first descendant matching selector, or nil.
func (t *Target) QueryOne(selector string) *Target {
	if m := t.Query(selector); len(m) > 0 {
		return m[0]
	}
	return nil
}

func splitSelector(selector string) []string {
	var parts []string
	for _, p := range strings.Split(selector, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func matchSelector(t *Target, sel string) bool {
	switch {
	case sel == "*":
		return true
	case strings.HasPrefix(sel, "."):
		for _, c := range strings.Split(sel[1:], ".") {
			if !t.HasClass(c) {
				return false
			}
		}
		return true
	case strings.HasPrefix(sel, "#"):
		return t.Name == sel[1:]
	default:
		return t.Name == sel
	}
}

// validSelector reports whether selector has at least one well-formed part.
func validSelector(selector string) bool {
	parts := splitSelector(selector)
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if p == "." || p == "#" || strings.Contains(p, " ") || strings.Contains(p, "..") {
			return false
		}
	}
	return true
}

// --- Geometry ---

// DocumentRect returns the target's natural box in document coordinates,
// ignoring every animated offset and pin. Trigger geometry is always measured
// from this box.
func (t *Target) DocumentRect() Rect {
	r := t.Layout
	for p := t.Parent; p != nil; p = p.Parent {
		r.X += p.Layout.X
		r.Y += p.Layout.Y
	}
	return r
}

// translation returns this target's own animated offset including its pin.
func (t *Target) translation() (dx, dy float64) {
	dx = t.X + t.XPercent/100*t.Layout.Width
	dy = t.Y + t.YPercent/100*t.Layout.Height + t.pinY
	return dx, dy
}

// ScreenRect returns where the target is drawn for the given scroll offset:
// document box plus the animated translation and pin of the target and all
// of its ancestors, scaled about its center. alpha is the product of the
// target's and its ancestors' opacity.
func (t *Target) ScreenRect(scrollOffset float64) (r Rect, alpha float64) {
	r = t.DocumentRect()
	alpha = 1
	for n := t; n != nil; n = n.Parent {
		dx, dy := n.translation()
		r.X += dx
		r.Y += dy
		alpha *= n.Alpha
	}
	r.Y -= scrollOffset
	if t.ScaleX != 1 || t.ScaleY != 1 {
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		r.Width *= t.ScaleX
		r.Height *= t.ScaleY
		r.X = cx - r.Width/2
		r.Y = cy - r.Height/2
	}
	return r, alpha
}

// ContentHeight returns the bottom edge of the lowest descendant (or the
// target itself) in document coordinates, relative to the target's top.
func (t *Target) ContentHeight() float64 {
	top := t.DocumentRect().Y
	bottom := top + t.Layout.Height
	var walk func(n *Target)
	walk = func(n *Target) {
		for _, c := range n.children {
			if b := c.DocumentRect().Bottom(); b > bottom {
				bottom = b
			}
			walk(c)
		}
	}
	walk(t)
	return bottom - top
}

// Pinned reports whether a scroll binding currently pins this target.
func (t *Target) Pinned() bool {
	return t.pinned
}

// PinOffset returns the vertical offset applied by an active pin.
func (t *Target) PinOffset() float64 {
	return t.pinY
}

func (t *Target) setPin(pinned bool, offset float64) {
	if t.pinned == pinned && t.pinY == offset {
		return
	}
	t.pinned = pinned
	t.pinY = offset
	t.dirty = true
}

// isAncestor reports whether candidate is an ancestor of target.
func isAncestor(candidate, target *Target) bool {
	for p := target; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from t.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (t *Target) removeChildByPtr(child *Target) {
	for i, c := range t.children {
		if c == child {
			copy(t.children[i:], t.children[i+1:])
			t.children[len(t.children)-1] = nil
			t.children = t.children[:len(t.children)-1]
			return
		}
	}
}
