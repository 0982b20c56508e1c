package scrollstage

// Coordinator is one mounted page: it evaluates the page's context groups,
// keeps exactly the matching ones active, and tears everything down when
// the page unmounts.
//
// Any predicate transition causes a full cycle: every active group is
// deactivated, then every matching group is activated again. There is no
// partial diff.
type Coordinator struct {
	engine   *Engine
	root     *Target
	groups   []*ContextGroup
	registry *Registry
	matcher  *Matcher

	state   State
	handles []*ActivationHandle
	subs    []*Subscription

	cycleNeeded bool
	cycles      int
}

// Mount validates groups, then activates every group matching the current
// viewport under root. The returned teardown deactivates everything and
// detaches every listener the mount created; it must be called exactly once.
// Configuration errors are returned before anything is attached.
func (e *Engine) Mount(root *Target, groups []*ContextGroup) (teardown func(), err error) {
	if root == nil {
		return nil, &ConfigurationError{Field: "root", Reason: "nil root element"}
	}
	for i, g := range groups {
		if g == nil {
			return nil, &ConfigurationError{Field: "groups", Reason: "nil context group"}
		}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		for _, prev := range groups[:i] {
			if prev == g {
				return nil, &ConfigurationError{Rule: groupLabel(g), Field: "groups", Reason: "context group listed twice"}
			}
		}
	}

	c := &Coordinator{
		engine:   e,
		root:     root,
		groups:   groups,
		registry: NewRegistry(e, root),
		matcher:  NewMatcher(e.viewport.Size()),
		state:    StateEvaluating,
	}
	for _, g := range groups {
		if g.Predicate != nil {
			c.subs = append(c.subs, c.matcher.Subscribe(*g.Predicate, c.predicateChanged))
		}
	}
	c.subs = append(c.subs,
		e.viewport.OnResize(e.sourceResized),
		e.scroll.OnScroll(e.sourceScrolled),
		e.onResize(c.onResize),
	)
	c.activateMatching()
	e.mounts = append(e.mounts, c)

	return c.teardown, nil
}

// State returns the lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Root returns the mounted scope element.
func (c *Coordinator) Root() *Target { return c.root }

// Groups returns the page's context groups. The slice MUST NOT be mutated.
func (c *Coordinator) Groups() []*ContextGroup { return c.groups }

// Cycles returns how many deactivate/reactivate cycles context changes caused.
func (c *Coordinator) Cycles() int { return c.cycles }

// IsActive reports whether g is currently active.
func (c *Coordinator) IsActive(g *ContextGroup) bool {
	return c.registry.IsActive(g)
}

// Handles returns the live activations in activation order.
func (c *Coordinator) Handles() []*ActivationHandle {
	return c.handles
}

// PinSpacing sums the scroll distance occupied by active pins.
func (c *Coordinator) PinSpacing() float64 {
	var sum float64
	for _, h := range c.handles {
		for _, b := range h.Bindings() {
			sum += b.PinSpacing()
		}
	}
	return sum
}

// ScrollLimit returns the largest meaningful scroll offset for a viewport
// of the given height: the root's content height plus active pin spacing,
// less one viewport.
func (c *Coordinator) ScrollLimit(viewportHeight float64) float64 {
	return max(0, c.root.ContentHeight()+c.PinSpacing()-viewportHeight)
}

func (c *Coordinator) predicateChanged(bool) {
	c.cycleNeeded = true
}

// onResize runs once per frame with the coalesced size. All predicates are
// re-evaluated before any group is touched so one resize that flips several
// predicates produces a single cycle.
func (c *Coordinator) onResize(size Size) {
	c.matcher.Update(size)
	if !c.cycleNeeded {
		return
	}
	c.cycleNeeded = false
	c.cycles++
	c.state = StateEvaluating
	c.deactivateAll()
	c.activateMatching()
}

func (c *Coordinator) activateMatching() {
	size := c.matcher.Size()
	for _, g := range c.groups {
		if g.Matches(size) {
			c.handles = append(c.handles, c.registry.Activate(g))
		}
	}
	c.state = StateActive
}

func (c *Coordinator) deactivateAll() {
	for i := len(c.handles) - 1; i >= 0; i-- {
		c.registry.Deactivate(c.handles[i])
		c.handles[i] = nil
	}
	c.handles = c.handles[:0]
}

func (c *Coordinator) teardown() {
	if c.state == StateUnmounted {
		misuse("teardown", "page already torn down")
	}
	c.deactivateAll()
	for _, s := range c.subs {
		s.Cancel()
	}
	c.subs = nil
	c.state = StateUnmounted
	c.engine.removeMount(c)
}
