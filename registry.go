package scrollstage

// effect is one live timeline and whatever drives it.
type effect struct {
	rule     *AnimationRule
	timeline *Timeline
	binding  *Binding     // nil for wall-clock rules
	frame    *Subscription // wall-clock rules only
}

// ActivationHandle is the live state of one activated ContextGroup.
type ActivationHandle struct {
	group    *ContextGroup
	effects  []*effect
	released bool
}

// Group returns the activated group.
func (h *ActivationHandle) Group() *ContextGroup { return h.group }

// Timelines returns the handle's live timelines in activation order.
func (h *ActivationHandle) Timelines() []*Timeline {
	out := make([]*Timeline, 0, len(h.effects))
	for _, fx := range h.effects {
		out = append(out, fx.timeline)
	}
	return out
}

// Bindings returns the handle's scroll bindings in activation order.
func (h *ActivationHandle) Bindings() []*Binding {
	var out []*Binding
	for _, fx := range h.effects {
		if fx.binding != nil {
			out = append(out, fx.binding)
		}
	}
	return out
}

// Released reports whether the handle has been deactivated.
func (h *ActivationHandle) Released() bool { return h.released }

// Registry activates ContextGroups against a root element and keeps every
// timeline and listener it creates so a deactivation can release them all.
// At most one activation per group is live at any time.
type Registry struct {
	engine *Engine
	root   *Target
	active map[*ContextGroup]*ActivationHandle
}

// NewRegistry creates a registry resolving selectors under root.
func NewRegistry(e *Engine, root *Target) *Registry {
	return &Registry{
		engine: e,
		root:   root,
		active: make(map[*ContextGroup]*ActivationHandle),
	}
}

// IsActive reports whether g currently has a live activation.
func (r *Registry) IsActive(g *ContextGroup) bool {
	_, ok := r.active[g]
	return ok
}

// ActiveCount returns the number of live activations.
func (r *Registry) ActiveCount() int {
	return len(r.active)
}

// Activate builds and binds every rule of g. A rule whose targets or trigger
// are missing from the tree is skipped with a warning; the rest of the group
// still activates. Activating a group that is already active panics with a
// ProgrammingError.
func (r *Registry) Activate(g *ContextGroup) *ActivationHandle {
	if _, ok := r.active[g]; ok {
		misuse("Activate", "context group "+groupLabel(g)+" is already active")
	}
	h := &ActivationHandle{group: g}
	for _, rule := range g.Rules {
		r.activateRule(h, rule)
	}
	r.active[g] = h
	return h
}

func (r *Registry) activateRule(h *ActivationHandle, rule *AnimationRule) {
	targets := r.root.Query(rule.Targets)
	if len(targets) == 0 {
		r.engine.warnf("rule %q: selector %q matched no targets, skipping", rule.label(), rule.Targets)
		return
	}
	if !rule.Each {
		r.addEffect(h, rule, targets)
		return
	}
	for _, t := range targets {
		r.addEffect(h, rule, []*Target{t})
	}
}

func (r *Registry) addEffect(h *ActivationHandle, rule *AnimationRule, targets []*Target) {
	var trigger *Target
	if rule.Scroll != nil {
		trigger = targets[0]
		if rule.Scroll.Trigger != "" {
			trigger = r.root.QueryOne(rule.Scroll.Trigger)
			if trigger == nil {
				r.engine.warnf("rule %q: trigger %q not found, skipping", rule.label(), rule.Scroll.Trigger)
				return
			}
		}
	}

	tl, err := Build(rule, targets)
	if err != nil {
		r.engine.warnf("rule %q: %v, skipping", rule.label(), err)
		return
	}
	fx := &effect{rule: rule, timeline: tl}
	if rule.Scroll != nil {
		b, err := Bind(r.engine, tl, *rule.Scroll, trigger)
		if err != nil {
			tl.Revert()
			r.engine.warnf("rule %q: %v, skipping", rule.label(), err)
			return
		}
		fx.binding = b
	} else {
		fx.frame = r.engine.onFrame(tl.Update)
		tl.Play()
	}
	h.effects = append(h.effects, fx)
}

// Deactivate reverts every timeline of h to its starting pose, then
// releases its bindings and listeners, newest first. Deactivating a handle
// twice, or one this registry did not create, panics with a ProgrammingError.
func (r *Registry) Deactivate(h *ActivationHandle) {
	if h == nil || h.released {
		misuse("Deactivate", "activation handle already released")
	}
	if r.active[h.group] != h {
		misuse("Deactivate", "activation handle does not belong to this registry")
	}
	for i := len(h.effects) - 1; i >= 0; i-- {
		fx := h.effects[i]
		fx.timeline.Revert()
		if fx.binding != nil {
			fx.binding.Unbind()
		}
		fx.frame.Cancel()
	}
	h.released = true
	delete(r.active, h.group)
}

func groupLabel(g *ContextGroup) string {
	if g.Name != "" {
		return g.Name
	}
	if g.Predicate != nil {
		return g.Predicate.String()
	}
	return "(always)"
}
