package scrollstage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Binding drives a timeline from scroll position. Create one with Bind and
// release it with Unbind exactly once.
type Binding struct {
	engine   *Engine
	timeline *Timeline
	opts     ScrollBinding
	trigger  *Target
	steps    int
	geom     Geometry

	subs []*Subscription

	// enter-trigger state
	after bool
	fired bool

	// scrub state
	target       float64 // progress implied by the latest offset
	lastScrollAt float64
	settled      bool
	lagTween     *gween.Tween
	snapTween    *gween.Tween
	snapTo       float64

	unbound bool
}

// Bind attaches tl to scroll position according to opts, measuring geometry
// from trigger. Every configuration problem is reported before any listener
// is attached. The binding applies the current scroll offset immediately.
func Bind(e *Engine, tl *Timeline, opts ScrollBinding, trigger *Target) (*Binding, error) {
	if err := opts.Validate(); err != nil {
		return nil, withRule(err, tl.rule.label())
	}
	if trigger == nil {
		return nil, &ConfigurationError{Rule: tl.rule.label(), Field: "trigger", Value: opts.Trigger, Reason: "no trigger element"}
	}
	b := &Binding{
		engine:   e,
		timeline: tl,
		opts:     opts,
		trigger:  trigger,
		steps:    opts.Steps,
	}
	if opts.Mode == ModeSnapStep {
		if b.steps == 0 {
			b.steps = len(tl.targets)
		}
		if b.steps < 2 {
			return nil, &ConfigurationError{Rule: tl.rule.label(), Field: "steps", Value: "auto", Reason: "snap needs at least two steps"}
		}
	}

	b.refresh(e.viewport.Size())
	b.subs = append(b.subs,
		e.onScroll(b.onScroll),
		e.onResize(b.refresh),
		e.onFrame(b.onFrame),
	)

	offset := e.scroll.Offset()
	if opts.Mode == ModeEnterTrigger {
		b.after = offset >= b.geom.Start
		if b.after {
			b.forward()
		}
	} else {
		b.lastScrollAt = e.now
		b.target = ScrubProgress(offset, b.geom.Start, b.geom.End)
		b.updatePin(offset)
		tl.Seek(b.target)
	}
	return b, nil
}

// Timeline returns the driven timeline.
func (b *Binding) Timeline() *Timeline { return b.timeline }

// Trigger returns the element whose geometry defines the scroll range.
func (b *Binding) Trigger() *Target { return b.trigger }

// Geometry returns the resolved scroll range.
func (b *Binding) Geometry() Geometry { return b.geom }

// Steps returns the resolved snap stop count (0 outside snap-step mode).
func (b *Binding) Steps() int {
	if b.opts.Mode != ModeSnapStep {
		return 0
	}
	return b.steps
}

// Mode returns the binding's mode.
func (b *Binding) Mode() Mode { return b.opts.Mode }

// PinSpacing returns the extra scroll distance the binding's pin occupies.
func (b *Binding) PinSpacing() float64 {
	if b.unbound || !b.opts.pins() {
		return 0
	}
	return b.geom.End - b.geom.Start
}

// Unbind detaches every listener, cancels in-flight tweens and releases the
// pin. After it returns no callback of this binding fires. Unbinding twice
// panics with a ProgrammingError.
func (b *Binding) Unbind() {
	if b.unbound {
		misuse("Unbind", "binding for "+b.timeline.rule.label()+" already unbound")
	}
	b.unbound = true
	for _, s := range b.subs {
		s.Cancel()
	}
	b.subs = nil
	b.lagTween = nil
	b.snapTween = nil
	b.timeline.Kill()
	if b.opts.pins() {
		b.trigger.setPin(false, 0)
	}
}

func (b *Binding) refresh(size Size) {
	b.geom = ResolveGeometry(&b.opts, b.trigger.DocumentRect(), size)
}

func (b *Binding) onScroll(offset float64) {
	if b.opts.Mode == ModeEnterTrigger {
		b.enterUpdate(offset)
		return
	}
	b.updatePin(offset)
	b.target = ScrubProgress(offset, b.geom.Start, b.geom.End)
	b.lastScrollAt = b.engine.now
	b.settled = false
	b.snapTween = nil
	if b.opts.ScrubLag > 0 {
		b.lagTween = gween.New(float32(b.timeline.progress), float32(b.target), float32(b.opts.ScrubLag), ease.OutQuad)
		return
	}
	b.timeline.Seek(b.target)
}

func (b *Binding) updatePin(offset float64) {
	if !b.opts.pins() {
		return
	}
	b.trigger.setPin(PinState(offset, b.geom.Start, b.geom.End))
}

func (b *Binding) onFrame(dt float64) {
	if b.opts.Mode == ModeEnterTrigger {
		b.timeline.Update(dt)
		return
	}
	if b.lagTween != nil {
		val, done := b.lagTween.Update(float32(dt))
		if done {
			b.lagTween = nil
			b.timeline.Seek(b.target)
		} else {
			b.timeline.Seek(float64(val))
		}
	}
	if b.opts.Mode != ModeSnapStep {
		return
	}
	if !b.settled && b.engine.now-b.lastScrollAt >= b.engine.cfg.SettleWindow {
		b.settled = true
		b.lagTween = nil
		b.snapTo = SnapProgress(b.target, b.steps)
		b.snapTween = gween.New(float32(b.timeline.progress), float32(b.snapTo), float32(b.engine.cfg.SnapDuration), ease.InOutQuad)
	}
	if b.snapTween != nil {
		val, done := b.snapTween.Update(float32(dt))
		if done {
			b.snapTween = nil
			b.timeline.Seek(b.snapTo)
		} else {
			b.timeline.Seek(float64(val))
		}
	}
}

// enterUpdate fires on threshold crossings. Forward counts as soon as the
// offset reaches the threshold; backward only once it has moved back past
// the hysteresis band, so jitter at the line cannot fire twice.
func (b *Binding) enterUpdate(offset float64) {
	switch {
	case !b.after && offset >= b.geom.Start:
		b.after = true
		b.forward()
	case b.after && offset < b.geom.Start-b.engine.cfg.Hysteresis:
		b.after = false
		b.backward()
	}
}

func (b *Binding) forward() {
	switch b.opts.Toggle {
	case TogglePlayOnce:
		if b.fired {
			return
		}
		b.timeline.Play()
	case ToggleReplayBothDirections:
		b.timeline.Play()
	case ToggleReplayForwardOnly:
		if b.fired {
			b.timeline.Restart()
		} else {
			b.timeline.Play()
		}
	}
	b.fired = true
}

func (b *Binding) backward() {
	if b.opts.Toggle == ToggleReplayBothDirections {
		b.timeline.Reverse()
	}
}
