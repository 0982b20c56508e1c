package scrollstage

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and activation metrics.
// Only populated when the engine is in debug mode.
type debugStats struct {
	frameTime time.Duration
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing and listener counts are logged to stderr and a warning is printed
// when the listener count looks like a leak.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugLog prints frame stats to stderr.
func (e *Engine) debugLog() {
	if !e.debug {
		return
	}
	groups, timelines := 0, 0
	for _, m := range e.mounts {
		for _, h := range m.handles {
			groups++
			timelines += len(h.effects)
		}
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrollstage] frame: %v | groups: %d | timelines: %d | listeners: %d\n",
		e.stats.frameTime, groups, timelines, e.ListenerCount())
	debugCheckListenerCount(e, timelines)
}

// debugMaxListenersPerTimeline bounds what a healthy activation set needs:
// a binding holds scroll, resize and frame listeners.
const debugMaxListenersPerTimeline = 3

// debugCheckListenerCount warns on stderr if more listeners are attached
// than the live timelines and mounts account for.
func debugCheckListenerCount(e *Engine, timelines int) {
	limit := timelines*debugMaxListenersPerTimeline + len(e.mounts)
	if n := e.ListenerCount(); n > limit {
		_, _ = fmt.Fprintf(os.Stderr, "[scrollstage] warning: %d listeners attached for %d timelines (limit %d)\n",
			n, timelines, limit)
	}
}

// TimelineState is a point-in-time view of one live timeline.
type TimelineState struct {
	Group    string
	Rule     string
	Targets  []string
	Mode     string // "play" for wall-clock rules
	Progress float64
	Playing  bool
	Reversed bool
	Pinned   bool
}

// Snapshot returns the state of every live timeline across all mounts, in
// activation order.
func (e *Engine) Snapshot() []TimelineState {
	var out []TimelineState
	for _, m := range e.mounts {
		for _, h := range m.handles {
			for _, fx := range h.effects {
				out = append(out, fx.state(groupLabel(h.group)))
			}
		}
	}
	return out
}

func (fx *effect) state(group string) TimelineState {
	tl := fx.timeline
	st := TimelineState{
		Group:    group,
		Rule:     fx.rule.label(),
		Mode:     "play",
		Progress: tl.progress,
		Playing:  tl.Playing(),
		Reversed: tl.reversed,
	}
	for _, t := range tl.targets {
		st.Targets = append(st.Targets, t.Name)
	}
	if fx.binding != nil {
		st.Mode = fx.binding.opts.Mode.String()
		st.Pinned = fx.binding.trigger.Pinned()
	}
	return st
}
