package scrollstage

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the viewport-measurement service the engine consumes.
type Viewport interface {
	Size() Size
	OnResize(fn func(Size)) *Subscription
}

// ScrollSource reports the vertical scroll offset of the page.
type ScrollSource interface {
	Offset() float64
	OnScroll(fn func(float64)) *Subscription
}

// ManualViewport is a Viewport whose size is set by its owner: a window
// runner, a terminal, or a test.
type ManualViewport struct {
	size      Size
	listeners listenerList[Size]
}

// NewManualViewport creates a viewport of the given size.
func NewManualViewport(width, height float64) *ManualViewport {
	return &ManualViewport{size: Size{Width: width, Height: height}}
}

// Size returns the current viewport size.
func (v *ManualViewport) Size() Size {
	return v.size
}

// SetSize updates the size and notifies resize listeners when it changed.
func (v *ManualViewport) SetSize(width, height float64) {
	s := Size{Width: width, Height: height}
	if s == v.size {
		return
	}
	v.size = s
	v.listeners.emit(s)
}

// OnResize registers fn to be called after every size change.
func (v *ManualViewport) OnResize(fn func(Size)) *Subscription {
	return v.listeners.add(fn)
}

// ListenerCount returns the number of attached resize listeners.
func (v *ManualViewport) ListenerCount() int {
	return v.listeners.len()
}

// scrollAnim holds an active scroll-to tween.
type scrollAnim struct {
	tween *gween.Tween
}

// ManualScroll is a ScrollSource driven by its owner. Max bounds the offset
// when positive.
type ManualScroll struct {
	offset    float64
	max       float64
	listeners listenerList[float64]

	scrollTween *scrollAnim
}

// NewManualScroll creates a scroll source at offset 0 with no upper bound.
func NewManualScroll() *ManualScroll {
	return &ManualScroll{}
}

// Offset returns the current scroll offset.
func (s *ManualScroll) Offset() float64 {
	return s.offset
}

// Max returns the upper bound of the offset (0 = unbounded).
func (s *ManualScroll) Max() float64 {
	return s.max
}

// SetMax bounds the offset to [0, max] and re-clamps the current offset.
// A non-positive max removes the bound.
func (s *ManualScroll) SetMax(limit float64) {
	s.max = limit
	s.set(s.offset)
}

// SetOffset moves to the given offset, clamped to the valid range, and
// notifies scroll listeners when it changed. Any scroll-to animation stops.
func (s *ManualScroll) SetOffset(offset float64) {
	s.scrollTween = nil
	s.set(offset)
}

// ScrollBy moves the offset by delta.
func (s *ManualScroll) ScrollBy(delta float64) {
	s.SetOffset(s.offset + delta)
}

func (s *ManualScroll) set(offset float64) {
	offset = math.Max(0, offset)
	if s.max > 0 {
		offset = math.Min(offset, s.max)
	}
	if offset == s.offset {
		return
	}
	s.offset = offset
	s.listeners.emit(offset)
}

// ScrollTo animates the offset to the given value over duration seconds.
// Advance it with Update.
func (s *ManualScroll) ScrollTo(offset float64, duration float32, easeFn ease.TweenFunc) {
	s.scrollTween = &scrollAnim{
		tween: gween.New(float32(s.offset), float32(offset), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in flight.
func (s *ManualScroll) Scrolling() bool {
	return s.scrollTween != nil
}

// Update advances an in-flight ScrollTo animation by dt seconds.
func (s *ManualScroll) Update(dt float32) {
	if s.scrollTween == nil {
		return
	}
	val, done := s.scrollTween.tween.Update(dt)
	if done {
		s.scrollTween = nil
	}
	s.set(float64(val))
}

// OnScroll registers fn to be called after every offset change.
func (s *ManualScroll) OnScroll(fn func(float64)) *Subscription {
	return s.listeners.add(fn)
}

// ListenerCount returns the number of attached scroll listeners.
func (s *ManualScroll) ListenerCount() int {
	return s.listeners.len()
}
