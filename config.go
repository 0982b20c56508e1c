package scrollstage

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Page is a page rule list together with the element tree it animates, as
// loaded from a YAML page file.
type Page struct {
	Name   string
	Root   *Target
	Groups []*ContextGroup

	boxes []layoutBinding
}

// Length is a layout length: plain pixels, or a percentage of the viewport
// width ("100vw") or height ("50vh").
type Length struct {
	Value float64
	Unit  string // "", "vw" or "vh"
}

// UnmarshalYAML accepts a number or a string with an optional px, vw or vh
// suffix.
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseLength(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = parsed
	return nil
}

// ParseLength parses "120", "120px", "100vw" or "50vh".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	var l Length
	switch {
	case strings.HasSuffix(s, "vw"):
		l.Unit, s = "vw", strings.TrimSuffix(s, "vw")
	case strings.HasSuffix(s, "vh"):
		l.Unit, s = "vh", strings.TrimSuffix(s, "vh")
	default:
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Length{}, &ConfigurationError{Field: "length", Value: s, Reason: "expected <number>[px|vw|vh]"}
	}
	l.Value = v
	return l, nil
}

// Resolve converts the length to pixels for a viewport size.
func (l Length) Resolve(size Size) float64 {
	switch l.Unit {
	case "vw":
		return l.Value / 100 * size.Width
	case "vh":
		return l.Value / 100 * size.Height
	default:
		return l.Value
	}
}

type boxFile struct {
	X      *Length `yaml:"x"`
	Y      *Length `yaml:"y"`
	Width  *Length `yaml:"width"`
	Height *Length `yaml:"height"`
}

type overrideFile struct {
	Media   string `yaml:"media"`
	boxFile `yaml:",inline"`
}

type targetFile struct {
	Name     string         `yaml:"name"`
	Class    string         `yaml:"class"`
	Label    string         `yaml:"label"`
	Color    []float64      `yaml:"color"`
	boxFile  `yaml:",inline"`
	When     []overrideFile `yaml:"when"`
	Children []targetFile   `yaml:"children"`
}

type scrollFile struct {
	Mode     string  `yaml:"mode"`
	Trigger  string  `yaml:"trigger"`
	Start    string  `yaml:"start"`
	End      string  `yaml:"end"`
	Steps    int     `yaml:"steps"`
	Toggle   string  `yaml:"toggle"`
	Pin      bool    `yaml:"pin"`
	ScrubLag float64 `yaml:"scrubLag"`
}

type ruleFile struct {
	Name     string             `yaml:"name"`
	Targets  string             `yaml:"targets"`
	Each     bool               `yaml:"each"`
	From     map[string]float64 `yaml:"from"`
	To       map[string]float64 `yaml:"to"`
	Span     bool               `yaml:"span"`
	Duration float64            `yaml:"duration"`
	Ease     string             `yaml:"ease"`
	Stagger  float64            `yaml:"stagger"`
	Delay    float64            `yaml:"delay"`
	Scroll   *scrollFile        `yaml:"scroll"`
}

type groupFile struct {
	Name  string     `yaml:"name"`
	When  string     `yaml:"when"`
	Rules []ruleFile `yaml:"rules"`
}

type pageFile struct {
	Name   string      `yaml:"name"`
	Layout targetFile  `yaml:"layout"`
	Groups []groupFile `yaml:"groups"`
}

type layoutOverride struct {
	pred ContextPredicate
	box  boxFile
}

type layoutBinding struct {
	target    *Target
	base      boxFile
	overrides []layoutOverride
}

// LoadPage parses a YAML page file. The returned page's layout is resolved
// for a zero-size viewport; call Layout with the real size before mounting.
func LoadPage(data []byte) (*Page, error) {
	var f pageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	p := &Page{Name: f.Name}

	root, err := p.buildTarget(f.Layout)
	if err != nil {
		return nil, fmt.Errorf("parse page %q: %w", f.Name, err)
	}
	p.Root = root

	for i, gf := range f.Groups {
		g, err := buildGroup(gf, i)
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", f.Name, err)
		}
		p.Groups = append(p.Groups, g)
	}
	p.Layout(Size{})
	return p, nil
}

// Layout resolves every responsive length for the given viewport size. For
// each target the base box applies first, then every matching "when"
// override in order. Fields no box sets resolve to zero.
func (p *Page) Layout(size Size) {
	for _, lb := range p.boxes {
		var r Rect
		applyBox(&r, lb.base, size)
		for _, o := range lb.overrides {
			if o.pred.Evaluate(size) {
				applyBox(&r, o.box, size)
			}
		}
		if r != lb.target.Layout {
			lb.target.Layout = r
			lb.target.MarkDirty()
		}
	}
}

func applyBox(r *Rect, b boxFile, size Size) {
	if b.X != nil {
		r.X = b.X.Resolve(size)
	}
	if b.Y != nil {
		r.Y = b.Y.Resolve(size)
	}
	if b.Width != nil {
		r.Width = b.Width.Resolve(size)
	}
	if b.Height != nil {
		r.Height = b.Height.Resolve(size)
	}
}

func (p *Page) buildTarget(tf targetFile) (*Target, error) {
	t := NewTarget(tf.Name, Rect{}, tf.Class)
	t.Label = tf.Label
	switch len(tf.Color) {
	case 0:
		t.Color = Color{} // layout-only container, not drawn
	case 3:
		t.Color = Color{tf.Color[0], tf.Color[1], tf.Color[2], 1}
	case 4:
		t.Color = Color{tf.Color[0], tf.Color[1], tf.Color[2], tf.Color[3]}
	default:
		return nil, &ConfigurationError{Rule: tf.Name, Field: "color", Reason: "expected 3 or 4 components"}
	}
	lb := layoutBinding{target: t, base: tf.boxFile}
	for _, o := range tf.When {
		pred, err := ParsePredicate(o.Media)
		if err != nil {
			return nil, withRule(err, tf.Name)
		}
		lb.overrides = append(lb.overrides, layoutOverride{pred: pred, box: o.boxFile})
	}
	p.boxes = append(p.boxes, lb)

	for _, cf := range tf.Children {
		c, err := p.buildTarget(cf)
		if err != nil {
			return nil, err
		}
		t.AddChild(c)
	}
	return t, nil
}

func buildGroup(gf groupFile, index int) (*ContextGroup, error) {
	name := gf.Name
	if name == "" {
		name = fmt.Sprintf("groups[%d]", index)
	}
	rules := make([]*AnimationRule, 0, len(gf.Rules))
	for _, rf := range gf.Rules {
		r, err := buildRule(rf)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return NewContextGroup(name, gf.When, rules...)
}

// naturalValue is the untouched value of a property, used for the side of a
// from/to pair a rule file leaves out.
func naturalValue(name string) float64 {
	switch name {
	case "opacity", "alpha", "scale", "scaleX", "scaleY":
		return 1
	}
	return 0
}

func buildRule(rf ruleFile) (*AnimationRule, error) {
	r := &AnimationRule{
		Name:       rf.Name,
		Targets:    rf.Targets,
		Each:       rf.Each,
		Properties: make(map[string]Delta),
		Duration:   rf.Duration,
		Ease:       rf.Ease,
		Stagger:    rf.Stagger,
		Delay:      rf.Delay,
	}
	for name, v := range rf.From {
		d := Delta{From: v, To: naturalValue(name), Span: rf.Span}
		if to, ok := rf.To[name]; ok {
			d.To = to
		}
		r.Properties[name] = d
	}
	for name, v := range rf.To {
		if _, ok := rf.From[name]; ok {
			continue
		}
		r.Properties[name] = Delta{From: naturalValue(name), To: v, Span: rf.Span}
	}

	if sf := rf.Scroll; sf != nil {
		mode, err := ParseMode(sf.Mode)
		if err != nil {
			return nil, withRule(err, r.label())
		}
		toggle, err := ParseTogglePolicy(sf.Toggle)
		if err != nil {
			return nil, withRule(err, r.label())
		}
		r.Scroll = &ScrollBinding{
			Mode:     mode,
			Trigger:  sf.Trigger,
			Start:    sf.Start,
			End:      sf.End,
			Steps:    sf.Steps,
			Toggle:   toggle,
			Pin:      sf.Pin,
			ScrubLag: sf.ScrubLag,
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
