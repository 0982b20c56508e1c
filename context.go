package scrollstage

import (
	"fmt"
	"strconv"
	"strings"
)

// PredicateKind is the comparison a ContextPredicate applies to the
// viewport width.
type PredicateKind uint8

const (
	MinWidth PredicateKind = iota // width >= threshold
	MaxWidth                      // width <= threshold
)

func (k PredicateKind) String() string {
	switch k {
	case MinWidth:
		return "min-width"
	case MaxWidth:
		return "max-width"
	default:
		return "unknown"
	}
}

// ContextPredicate is a viewport condition such as "(min-width: 769px)".
type ContextPredicate struct {
	Kind      PredicateKind
	Threshold float64 // pixels
}

// NewPredicate builds a predicate, rejecting unknown kinds and negative or
// non-finite thresholds.
func NewPredicate(kind PredicateKind, threshold float64) (ContextPredicate, error) {
	p := ContextPredicate{Kind: kind, Threshold: threshold}
	if err := p.Validate(); err != nil {
		return ContextPredicate{}, err
	}
	return p, nil
}

// ParsePredicate parses media-query style text: "(min-width: 769px)",
// "max-width:768", "min-width: 1024px". Whitespace and the surrounding
// parentheses are optional; the unit, if any, must be px.
func ParsePredicate(query string) (ContextPredicate, error) {
	fail := func(reason string) (ContextPredicate, error) {
		return ContextPredicate{}, &ConfigurationError{Field: "predicate", Value: query, Reason: reason}
	}
	q := strings.TrimSpace(query)
	q = strings.TrimPrefix(q, "(")
	q = strings.TrimSuffix(q, ")")
	name, value, ok := strings.Cut(q, ":")
	if !ok {
		return fail("expected <feature>: <pixels>")
	}
	var kind PredicateKind
	switch strings.TrimSpace(name) {
	case "min-width":
		kind = MinWidth
	case "max-width":
		kind = MaxWidth
	default:
		return fail("unsupported media feature")
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	px, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fail("threshold is not a number")
	}
	p := ContextPredicate{Kind: kind, Threshold: px}
	if err := p.Validate(); err != nil {
		return fail(err.(*ConfigurationError).Reason)
	}
	return p, nil
}

// MustParsePredicate is like ParsePredicate but panics on error. Meant for
// page rule lists written as Go literals.
func MustParsePredicate(query string) ContextPredicate {
	p, err := ParsePredicate(query)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether the predicate is well formed.
func (p ContextPredicate) Validate() error {
	if p.Kind > MaxWidth {
		return &ConfigurationError{Field: "predicate", Reason: "unknown predicate kind"}
	}
	if p.Threshold < 0 || p.Threshold != p.Threshold || p.Threshold > 1e9 {
		return &ConfigurationError{Field: "predicate", Value: fmt.Sprint(p.Threshold), Reason: "threshold out of range"}
	}
	return nil
}

// Evaluate reports whether the predicate holds for the given viewport size.
func (p ContextPredicate) Evaluate(size Size) bool {
	switch p.Kind {
	case MinWidth:
		return size.Width >= p.Threshold
	case MaxWidth:
		return size.Width <= p.Threshold
	}
	return false
}

func (p ContextPredicate) String() string {
	return fmt.Sprintf("(%s: %gpx)", p.Kind, p.Threshold)
}

type matchEntry struct {
	pred ContextPredicate
	last bool
	fn   func(bool)
	sub  *Subscription
}

// Matcher tracks a set of predicates against the current viewport size and
// reports transitions. A subscriber is never called for a resize that does
// not flip its predicate.
type Matcher struct {
	size    Size
	entries []*matchEntry
}

// NewMatcher creates a matcher evaluated against the initial size.
func NewMatcher(initial Size) *Matcher {
	return &Matcher{size: initial}
}

// Size returns the size the matcher last evaluated.
func (m *Matcher) Size() Size {
	return m.size
}

// Matches evaluates pred against the matcher's current size.
func (m *Matcher) Matches(pred ContextPredicate) bool {
	return pred.Evaluate(m.size)
}

// Subscribe registers fn to be called with the new value whenever pred
// flips. The current value is recorded without calling fn.
func (m *Matcher) Subscribe(pred ContextPredicate, fn func(bool)) *Subscription {
	e := &matchEntry{pred: pred, last: pred.Evaluate(m.size), fn: fn}
	e.sub = &Subscription{cancel: func() { m.remove(e) }}
	m.entries = append(m.entries, e)
	return e.sub
}

// Update re-evaluates every subscribed predicate against size and calls the
// subscribers whose predicate changed value, in subscription order.
func (m *Matcher) Update(size Size) {
	m.size = size
	snap := append([]*matchEntry(nil), m.entries...)
	for _, e := range snap {
		if e.sub.done {
			continue
		}
		now := e.pred.Evaluate(size)
		if now == e.last {
			continue
		}
		e.last = now
		e.fn(now)
	}
}

func (m *Matcher) remove(e *matchEntry) {
	for i, it := range m.entries {
		if it == e {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}
