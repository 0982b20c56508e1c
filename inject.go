package scrollstage

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticResize
)

// syntheticEvent is one injected scroll or resize.
type syntheticEvent struct {
	kind   syntheticKind
	offset float64
	size   Size
}

// OffsetSetter is implemented by scroll sources that accept injected
// offsets, such as ManualScroll.
type OffsetSetter interface {
	SetOffset(offset float64)
}

// SizeSetter is implemented by viewports that accept injected sizes, such as
// ManualViewport.
type SizeSetter interface {
	SetSize(width, height float64)
}

// InjectScroll queues a scroll to the given offset. The event is applied at
// the start of the next Update, one event per frame.
func (e *Engine) InjectScroll(offset float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticScroll, offset: offset})
}

// InjectScrollTo queues a scroll from one offset to another, linearly
// interpolated over frames frames (minimum 2: start and end).
func (e *Engine) InjectScrollTo(from, to float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectScroll(from + (to-from)*t)
	}
}

// InjectResize queues a viewport resize.
func (e *Engine) InjectResize(width, height float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticResize, size: Size{Width: width, Height: height}})
}

// PendingInjections returns the number of queued synthetic events.
func (e *Engine) PendingInjections() int {
	return len(e.injectQueue)
}

// processInjected pops one event from the inject queue and applies it to the
// engine's sources, which notify the engine like a real event would.
// Returns true if an event was consumed.
func (e *Engine) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		s, ok := e.scroll.(OffsetSetter)
		if !ok {
			e.warnf("injected scroll dropped: scroll source %T cannot be set", e.scroll)
			return true
		}
		s.SetOffset(evt.offset)
	case syntheticResize:
		v, ok := e.viewport.(SizeSetter)
		if !ok {
			e.warnf("injected resize dropped: viewport %T cannot be set", e.viewport)
			return true
		}
		v.SetSize(evt.size.Width, evt.size.Height)
	}
	return true
}
