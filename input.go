package scrollstage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// --- Constants ---

const (
	wheelStep           = 48.0 // pixels per wheel notch
	arrowSpeed          = 600  // pixels per second while an arrow key is held
	pageFraction        = 0.9  // PageUp/PageDown/Space jump, in viewport heights
	pageScrollDuration  = 0.35 // seconds
	defaultDragDeadZone = 4.0  // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	touch    bool
	touchID  ebiten.TouchID
	startY   float64
	lastY    float64
	dragging bool
}

// scrollInput maps desktop and touch input onto a ManualScroll the way a
// browser does: wheel, arrow and page keys, and drag-to-scroll.
type scrollInput struct {
	scroll   *ManualScroll
	pointer  pointerState
	deadZone float64
	touchBuf []ebiten.TouchID
}

func newScrollInput(scroll *ManualScroll) *scrollInput {
	return &scrollInput{scroll: scroll, deadZone: defaultDragDeadZone}
}

// update reads this tick's input. viewportHeight sizes page jumps; dt is the
// tick length in seconds.
func (in *scrollInput) update(viewportHeight, dt float64) {
	if _, dy := ebiten.Wheel(); dy != 0 {
		in.scroll.ScrollBy(-dy * wheelStep)
	}

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		in.scroll.ScrollBy(arrowSpeed * dt)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		in.scroll.ScrollBy(-arrowSpeed * dt)
	}

	page := viewportHeight * pageFraction
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown),
		inpututil.IsKeyJustPressed(ebiten.KeySpace) && !shift:
		in.pageTo(in.scroll.Offset() + page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp),
		inpututil.IsKeyJustPressed(ebiten.KeySpace) && shift:
		in.pageTo(in.scroll.Offset() - page)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		in.pageTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		if m := in.scroll.Max(); m > 0 {
			in.pageTo(m)
		}
	}

	in.processPointer()
}

func (in *scrollInput) pageTo(offset float64) {
	in.scroll.ScrollTo(offset, pageScrollDuration, ease.OutCubic)
}

// processPointer turns a vertical drag (mouse or first touch) into scrolling
// once it leaves the dead zone.
func (in *scrollInput) processPointer() {
	p := &in.pointer

	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	if !p.down && len(in.touchBuf) > 0 {
		_, y := ebiten.TouchPosition(in.touchBuf[0])
		*p = pointerState{down: true, touch: true, touchID: in.touchBuf[0], startY: float64(y), lastY: float64(y)}
		return
	}
	if !p.down && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		_, y := ebiten.CursorPosition()
		*p = pointerState{down: true, startY: float64(y), lastY: float64(y)}
		return
	}
	if !p.down {
		return
	}

	var y int
	if p.touch {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.down = false
			return
		}
		_, y = ebiten.TouchPosition(p.touchID)
	} else {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			p.down = false
			return
		}
		_, y = ebiten.CursorPosition()
	}

	fy := float64(y)
	if !p.dragging && math.Abs(fy-p.startY) >= in.deadZone {
		p.dragging = true
	}
	if p.dragging {
		in.scroll.ScrollBy(p.lastY - fy)
	}
	p.lastY = fy
}
