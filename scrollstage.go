package scrollstage

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default target tint.
var ColorWhite = Color{1, 1, 1, 1}

// Size is a viewport measurement in CSS-like pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left of the document, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Bottom returns the Y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Mode selects how a ScrollBinding maps scroll position to timeline progress.
type Mode uint8

const (
	ModePinScrub     Mode = iota // pin the trigger and scrub progress from scroll delta
	ModeSnapStep                 // scrub, then settle on one of N evenly spaced stops
	ModeEnterTrigger             // play when the trigger crosses a threshold line
)

var modeNames = [...]string{"pin-scrub", "snap-step", "enter-trigger"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a mode name ("pin-scrub", "snap-step", "enter-trigger")
// into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, &ConfigurationError{Field: "mode", Value: s, Reason: "unknown scroll mode"}
}

// TogglePolicy decides what an enter-trigger does on forward and backward
// threshold crossings.
type TogglePolicy uint8

const (
	TogglePlayOnce             TogglePolicy = iota // play on the first forward crossing only
	ToggleReplayBothDirections                     // play forward, reverse on backward crossing
	ToggleReplayForwardOnly                        // restart from zero on every forward crossing
)

var toggleNames = [...]string{"play-once", "replay-both-directions", "replay-forward-only"}

func (p TogglePolicy) String() string {
	if int(p) < len(toggleNames) {
		return toggleNames[p]
	}
	return "unknown"
}

// ParseTogglePolicy converts a policy name into a TogglePolicy. The empty
// string selects TogglePlayOnce.
func ParseTogglePolicy(s string) (TogglePolicy, error) {
	if s == "" {
		return TogglePlayOnce, nil
	}
	for i, name := range toggleNames {
		if name == s {
			return TogglePolicy(i), nil
		}
	}
	return 0, &ConfigurationError{Field: "toggle", Value: s, Reason: "unknown toggle policy"}
}

// State is the lifecycle state of a mounted page.
type State uint8

const (
	StateUnmounted  State = iota // nothing attached
	StateEvaluating              // contexts are being (re)evaluated
	StateActive                  // every matching group is active
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateEvaluating:
		return "evaluating"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
