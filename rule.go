package scrollstage

import (
	"fmt"
	"sort"
)

// DefaultDuration is the tween length in seconds used when a rule leaves
// Duration at zero.
const DefaultDuration = 0.5

// AnimationRule describes one animation: which targets, which properties
// from where to where, and how long. Rules are authored once per page and
// never mutated by the engine.
type AnimationRule struct {
	Name string

	// Targets is a selector resolved among the mounted root's descendants.
	Targets string
	// Each builds one timeline per matched target instead of one shared
	// timeline. With a scroll binding and no explicit Trigger, each target
	// becomes its own trigger.
	Each bool

	Properties map[string]Delta

	Duration float64 // seconds; 0 selects DefaultDuration
	Ease     string  // see ParseEase
	Stagger  float64 // seconds between consecutive targets' starts
	Delay    float64 // seconds before the first forward play

	// Scroll, when set, makes this a scroll-bound rule.
	Scroll *ScrollBinding
}

// ScrollBinding attaches a rule to scroll position.
type ScrollBinding struct {
	Mode Mode
	// Trigger selects the element whose geometry defines the scroll region.
	// Empty means the rule's first target (or each target with Each).
	Trigger string
	// Start and End are position expressions, see ParsePosition. Empty
	// selects the mode default for Start and the natural extent for End.
	Start string
	End   string
	// Steps is the number of snap stops for ModeSnapStep; 0 selects the
	// number of targets.
	Steps  int
	Toggle TogglePolicy
	// Pin freezes the trigger in the viewport while progress scrubs.
	// ModePinScrub always pins.
	Pin bool
	// ScrubLag smooths scrubbed progress over this many seconds.
	ScrubLag float64
}

func (b *ScrollBinding) pins() bool {
	return b.Mode == ModePinScrub || (b.Mode == ModeSnapStep && b.Pin)
}

// ContextGroup bundles rules gated by a viewport predicate. A group with a
// nil Predicate is always active.
type ContextGroup struct {
	Name      string
	Predicate *ContextPredicate
	Rules     []*AnimationRule
}

// NewContextGroup builds a group from media-query text. An empty query
// yields an always-active group.
func NewContextGroup(name, query string, rules ...*AnimationRule) (*ContextGroup, error) {
	g := &ContextGroup{Name: name, Rules: rules}
	if query != "" {
		p, err := ParsePredicate(query)
		if err != nil {
			return nil, withRule(err, name)
		}
		g.Predicate = &p
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Matches reports whether the group applies at the given size.
func (g *ContextGroup) Matches(size Size) bool {
	return g.Predicate == nil || g.Predicate.Evaluate(size)
}

// Validate checks the group's predicate and every rule.
func (g *ContextGroup) Validate() error {
	if g.Predicate != nil {
		if err := g.Predicate.Validate(); err != nil {
			return withRule(err, g.Name)
		}
	}
	for i, r := range g.Rules {
		if r == nil {
			return &ConfigurationError{Rule: g.Name, Field: fmt.Sprintf("rules[%d]", i), Reason: "nil rule"}
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *AnimationRule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Targets
}

// Validate checks everything about the rule that does not depend on the
// mounted target tree.
func (r *AnimationRule) Validate() error {
	fail := func(field, value, reason string) error {
		return &ConfigurationError{Rule: r.label(), Field: field, Value: value, Reason: reason}
	}
	if !validSelector(r.Targets) {
		return fail("targets", r.Targets, "empty or malformed target selector")
	}
	for name := range r.Properties {
		if _, ok := properties[name]; !ok {
			return fail("property", name, "unknown property")
		}
	}
	if r.Duration < 0 {
		return fail("duration", fmt.Sprint(r.Duration), "must not be negative")
	}
	if r.Stagger < 0 {
		return fail("stagger", fmt.Sprint(r.Stagger), "must not be negative")
	}
	if r.Delay < 0 {
		return fail("delay", fmt.Sprint(r.Delay), "must not be negative")
	}
	if _, err := ParseEase(r.Ease); err != nil {
		return withRule(err, r.label())
	}
	if r.Scroll != nil {
		if err := r.Scroll.Validate(); err != nil {
			return withRule(err, r.label())
		}
	}
	return nil
}

// Validate checks the binding's mode, positions and step count.
func (b *ScrollBinding) Validate() error {
	if b.Mode > ModeEnterTrigger {
		return &ConfigurationError{Field: "mode", Value: b.Mode.String(), Reason: "unknown scroll mode"}
	}
	if b.Toggle > ToggleReplayForwardOnly {
		return &ConfigurationError{Field: "toggle", Value: b.Toggle.String(), Reason: "unknown toggle policy"}
	}
	if b.Trigger != "" && !validSelector(b.Trigger) {
		return &ConfigurationError{Field: "trigger", Value: b.Trigger, Reason: "malformed trigger selector"}
	}
	if b.Steps < 0 || b.Steps == 1 {
		return &ConfigurationError{Field: "steps", Value: fmt.Sprint(b.Steps), Reason: "snap needs at least two steps"}
	}
	if b.ScrubLag < 0 {
		return &ConfigurationError{Field: "scrubLag", Value: fmt.Sprint(b.ScrubLag), Reason: "must not be negative"}
	}
	if b.Start != "" {
		p, err := ParsePosition(b.Start)
		if err != nil {
			return err
		}
		if p.Relative {
			return &ConfigurationError{Field: "start", Value: b.Start, Reason: "start cannot be relative"}
		}
	}
	if b.End != "" {
		if _, err := ParsePosition(b.End); err != nil {
			return err
		}
	}
	return nil
}

// propertyNames returns the rule's property names, sorted.
func (r *AnimationRule) propertyNames() []string {
	names := make([]string, 0, len(r.Properties))
	for n := range r.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *AnimationRule) duration() float64 {
	if r.Duration > 0 {
		return r.Duration
	}
	return DefaultDuration
}
