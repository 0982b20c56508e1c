package scrollstage

import (
	"math"
	"strconv"
	"strings"
)

// Edge is a point along an element or the viewport: a fraction of its
// length plus a pixel offset.
type Edge struct {
	Fraction float64
	Pixels   float64
}

func (e Edge) at(length float64) float64 {
	return e.Fraction*length + e.Pixels
}

// Position is a parsed scroll position expression.
//
//	"top 80%"      trigger top meets the line 80% down the viewport
//	"center top"   trigger center meets the viewport top
//	"bottom 100px" trigger bottom meets the line 100px below the viewport top
//	"+=1200"       1200px after the start (End only)
//	"+=50%"        half a viewport height after the start (End only)
type Position struct {
	Trigger  Edge
	Viewport Edge
	Relative bool
	Amount   Edge
}

// ParsePosition parses a position expression. A single edge is paired with
// the viewport top.
func ParsePosition(s string) (Position, error) {
	fail := func() (Position, error) {
		return Position{}, &ConfigurationError{Field: "position", Value: s, Reason: "expected \"<trigger edge> <viewport edge>\" or \"+=<amount>\""}
	}
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+="); ok {
		e, ok := parseEdge(rest)
		if !ok {
			return fail()
		}
		return Position{Relative: true, Amount: e}, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return fail()
	}
	trig, ok := parseEdge(fields[0])
	if !ok {
		return fail()
	}
	var vp Edge
	if len(fields) == 2 {
		if vp, ok = parseEdge(fields[1]); !ok {
			return fail()
		}
	}
	return Position{Trigger: trig, Viewport: vp}, nil
}

func parseEdge(s string) (Edge, bool) {
	switch s {
	case "top", "left":
		return Edge{}, true
	case "center":
		return Edge{Fraction: 0.5}, true
	case "bottom", "right":
		return Edge{Fraction: 1}, true
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Edge{}, false
		}
		return Edge{Fraction: f / 100}, true
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return Edge{}, false
	}
	return Edge{Pixels: f}, true
}

// Offset resolves an absolute position to the scroll offset at which the
// trigger edge meets the viewport edge.
func (p Position) Offset(trigger Rect, viewport Size) float64 {
	return trigger.Y + p.Trigger.at(trigger.Height) - p.Viewport.at(viewport.Height)
}

// Geometry is a binding's resolved scroll range.
type Geometry struct {
	Start, End float64
}

const (
	defaultScrubStart = "top top"
	defaultEnterStart = "top 80%"
)

// ResolveGeometry computes the scroll range of b for a trigger box and
// viewport size. Positions must already be valid (see ScrollBinding.Validate).
func ResolveGeometry(b *ScrollBinding, trigger Rect, viewport Size) Geometry {
	startExpr := b.Start
	if startExpr == "" {
		startExpr = defaultScrubStart
		if b.Mode == ModeEnterTrigger {
			startExpr = defaultEnterStart
		}
	}
	sp, _ := ParsePosition(startExpr)
	g := Geometry{Start: sp.Offset(trigger, viewport)}

	switch {
	case b.Mode == ModeEnterTrigger && b.End == "":
		g.End = g.Start
	case b.End == "":
		g.End = g.Start + NaturalTravel(trigger, viewport)
	default:
		ep, _ := ParsePosition(b.End)
		if ep.Relative {
			g.End = g.Start + ep.Amount.at(viewport.Height)
		} else {
			g.End = ep.Offset(trigger, viewport)
		}
	}
	if g.End < g.Start {
		g.End = g.Start
	}
	return g
}

// NaturalTravel is the scroll distance a pinned trigger needs to show all of
// its content: its overflow past the viewport width for a horizontal track,
// else its overflow past the viewport height, else one viewport height.
func NaturalTravel(trigger Rect, viewport Size) float64 {
	switch {
	case trigger.Width > viewport.Width:
		return trigger.Width - viewport.Width
	case trigger.Height > viewport.Height:
		return trigger.Height - viewport.Height
	default:
		return viewport.Height
	}
}

// ScrubProgress maps a scroll offset onto [0, 1] across [start, end].
// A zero-length range is a step at start.
func ScrubProgress(offset, start, end float64) float64 {
	if end <= start {
		if offset >= start {
			return 1
		}
		return 0
	}
	return clamp01((offset - start) / (end - start))
}

// PinState reports whether a trigger is pinned at offset and by how much it
// is shifted down to stay in place. After the range the shift stays at its
// final value so the trigger resumes normal flow below its pin spacing.
func PinState(offset, start, end float64) (pinned bool, shift float64) {
	switch {
	case offset < start:
		return false, 0
	case offset > end:
		return false, end - start
	default:
		return true, offset - start
	}
}

// SnapIndex quantizes progress to the nearest of steps evenly spaced stops,
// rounding halves up.
func SnapIndex(progress float64, steps int) int {
	if steps < 2 {
		return 0
	}
	idx := int(math.Floor(clamp01(progress)*float64(steps-1) + 0.5))
	if idx > steps-1 {
		idx = steps - 1
	}
	return idx
}

// SnapProgress returns the progress of the stop SnapIndex selects.
func SnapProgress(progress float64, steps int) float64 {
	if steps < 2 {
		return clamp01(progress)
	}
	return float64(SnapIndex(progress, steps)) / float64(steps-1)
}
