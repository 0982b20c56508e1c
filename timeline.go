package scrollstage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timeline animates a rule's properties across its targets. Progress runs
// from 0 to 1 over the whole timeline; with a stagger each target covers its
// own slice of that range.
//
// A timeline is either driven directly (Seek, from a scroll binding) or
// played over wall-clock time (Play, Reverse, advanced by Update). There is
// no global animation manager: whoever owns the timeline calls Update.
type Timeline struct {
	rule    *AnimationRule
	targets []*Target
	names   []string
	from    []float64 // per property, after Span scaling
	to      []float64
	ease    Easing

	total       float64 // seconds, duration plus stagger spread
	staggerFrac float64
	delay       float64
	rest        []restPose

	progress  float64
	reversed  bool
	tween     *gween.Tween
	delayLeft float64
	started   bool

	plays, reverses int
}

// Build creates a timeline for rule over targets, records the targets'
// current values as the rest pose and renders progress 0 immediately.
// An empty target set is a ConfigurationError.
func Build(rule *AnimationRule, targets []*Target) (*Timeline, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, &ConfigurationError{Rule: rule.label(), Field: "targets", Value: rule.Targets, Reason: "zero-length target set"}
	}
	easing, err := ParseEase(rule.Ease)
	if err != nil {
		return nil, withRule(err, rule.label())
	}

	n := len(targets)
	tl := &Timeline{
		rule:    rule,
		targets: append([]*Target(nil), targets...),
		names:   rule.propertyNames(),
		ease:    easing,
		delay:   rule.Delay,
	}
	span := float64(n - 1)
	for _, name := range tl.names {
		d := rule.Properties[name]
		if d.Span {
			d.From *= span
			d.To *= span
		}
		tl.from = append(tl.from, d.From)
		tl.to = append(tl.to, d.To)
	}

	dur := rule.duration()
	tl.total = dur + span*rule.Stagger
	if n > 1 && rule.Stagger > 0 {
		tl.staggerFrac = rule.Stagger / tl.total
	}

	tl.rest = make([]restPose, n)
	for i, t := range tl.targets {
		tl.rest[i] = captureRest(t, tl.names)
	}
	tl.render()
	return tl, nil
}

// Rule returns the rule the timeline was built from.
func (tl *Timeline) Rule() *AnimationRule { return tl.rule }

// Targets returns the animated targets. The slice MUST NOT be mutated.
func (tl *Timeline) Targets() []*Target { return tl.targets }

// Progress returns the current progress in [0, 1].
func (tl *Timeline) Progress() float64 { return tl.progress }

// Duration returns the wall-clock length of a full forward play in seconds.
func (tl *Timeline) Duration() float64 { return tl.total }

// Playing reports whether a Play or Reverse is in flight.
func (tl *Timeline) Playing() bool { return tl.tween != nil }

// Reversed reports whether the last playback direction was backwards.
func (tl *Timeline) Reversed() bool { return tl.reversed }

// Plays returns how many times Play (or Restart) has been called.
func (tl *Timeline) Plays() int { return tl.plays }

// Reverses returns how many times Reverse has been called.
func (tl *Timeline) Reverses() int { return tl.reverses }

// LocalProgress returns target i's progress for timeline progress p:
// clamp((p - i*sf) / (1 - (n-1)*sf), 0, 1) where sf is the stagger fraction.
func (tl *Timeline) LocalProgress(i int, p float64) float64 {
	n := len(tl.targets)
	if n <= 1 || tl.staggerFrac == 0 {
		return clamp01(p)
	}
	window := 1 - float64(n-1)*tl.staggerFrac
	if window <= 0 {
		if p >= float64(i)*tl.staggerFrac {
			return 1
		}
		return 0
	}
	return clamp01((p - float64(i)*tl.staggerFrac) / window)
}

// Seek jumps to progress p (clamped to [0, 1]) and stops any playback.
// Seeking to the current progress rewrites the same values.
func (tl *Timeline) Seek(p float64) {
	tl.tween = nil
	tl.delayLeft = 0
	tl.seek(p)
}

func (tl *Timeline) seek(p float64) {
	tl.progress = clamp01(p)
	tl.render()
}

// render writes every target's properties for the current progress.
// Disposed targets are skipped.
func (tl *Timeline) render() {
	for i, t := range tl.targets {
		if t.IsDisposed() {
			continue
		}
		e := tl.ease(tl.LocalProgress(i, tl.progress))
		for k, name := range tl.names {
			properties[name].set(t, tl.from[k]+(tl.to[k]-tl.from[k])*e)
		}
		t.MarkDirty()
	}
}

// Play runs forward from the current progress to 1 over the remaining
// duration. The rule's Delay applies to the first play only.
func (tl *Timeline) Play() {
	tl.plays++
	tl.reversed = false
	if !tl.started {
		tl.started = true
		tl.delayLeft = tl.delay
	}
	tl.playTo(1)
}

// Reverse runs backward from the current progress to 0.
func (tl *Timeline) Reverse() {
	tl.reverses++
	tl.reversed = true
	tl.delayLeft = 0
	tl.playTo(0)
}

// Restart seeks to 0 and plays forward without the delay.
func (tl *Timeline) Restart() {
	tl.started = true
	tl.Seek(0)
	tl.Play()
}

func (tl *Timeline) playTo(end float64) {
	remaining := (end - tl.progress) * tl.total
	if remaining < 0 {
		remaining = -remaining
	}
	if remaining == 0 {
		tl.tween = nil
		tl.seek(end)
		return
	}
	tl.tween = gween.New(float32(tl.progress), float32(end), float32(remaining), ease.Linear)
}

// Update advances an in-flight Play or Reverse by dt seconds. When every
// target has been disposed the playback stops without writing.
func (tl *Timeline) Update(dt float64) {
	if tl.tween == nil {
		return
	}
	if tl.allDisposed() {
		tl.tween = nil
		return
	}
	if tl.delayLeft > 0 {
		tl.delayLeft -= dt
		if tl.delayLeft > 0 {
			return
		}
		dt = -tl.delayLeft
		tl.delayLeft = 0
	}
	val, done := tl.tween.Update(float32(dt))
	if done {
		tl.tween = nil
		if tl.reversed {
			val = 0
		} else {
			val = 1
		}
	}
	tl.seek(float64(val))
}

// Kill stops playback where it is. No further writes happen until the
// timeline is sought or played again.
func (tl *Timeline) Kill() {
	tl.tween = nil
	tl.delayLeft = 0
}

// Revert stops playback, resets progress to 0 and restores every target to
// the values it had before Build.
func (tl *Timeline) Revert() {
	tl.Kill()
	tl.progress = 0
	tl.reversed = false
	tl.started = false
	for i, t := range tl.targets {
		if t.IsDisposed() {
			continue
		}
		tl.rest[i].restore(t)
	}
}

func (tl *Timeline) allDisposed() bool {
	for _, t := range tl.targets {
		if !t.IsDisposed() {
			return false
		}
	}
	return true
}
