package scrollstage

import "sort"

// Delta is the from/to pair for one animated property.
//
// When Span is set both ends are multiplied by the number of gaps between
// the resolved targets (n-1). A horizontal panel track uses
// {To: -100, Span: true} on xPercent to travel across every panel.
type Delta struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Span bool    `yaml:"span,omitempty"`
}

type property struct {
	get func(*Target) float64
	set func(*Target, float64)
}

var properties = map[string]property{
	"x":        {func(t *Target) float64 { return t.X }, func(t *Target, v float64) { t.X = v }},
	"y":        {func(t *Target) float64 { return t.Y }, func(t *Target, v float64) { t.Y = v }},
	"xPercent": {func(t *Target) float64 { return t.XPercent }, func(t *Target, v float64) { t.XPercent = v }},
	"yPercent": {func(t *Target) float64 { return t.YPercent }, func(t *Target, v float64) { t.YPercent = v }},
	"opacity":  {func(t *Target) float64 { return t.Alpha }, func(t *Target, v float64) { t.Alpha = v }},
	"alpha":    {func(t *Target) float64 { return t.Alpha }, func(t *Target, v float64) { t.Alpha = v }},
	"scaleX":   {func(t *Target) float64 { return t.ScaleX }, func(t *Target, v float64) { t.ScaleX = v }},
	"scaleY":   {func(t *Target) float64 { return t.ScaleY }, func(t *Target, v float64) { t.ScaleY = v }},
	"scale": {
		func(t *Target) float64 { return t.ScaleX },
		func(t *Target, v float64) { t.ScaleX, t.ScaleY = v, v },
	},
	"rotation": {func(t *Target) float64 { return t.Rotation }, func(t *Target, v float64) { t.Rotation = v }},
}

// PropertyNames returns the animatable property names, sorted.
func PropertyNames() []string {
	names := make([]string, 0, len(properties))
	for n := range properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// restPose captures every property a rule writes so a revert can put the
// target back exactly as it was before activation.
type restPose struct {
	names  []string
	values []float64
}

// captureRest expects names sorted so restores are deterministic when
// aliases such as "scale" and "scaleX" overlap.
func captureRest(t *Target, names []string) restPose {
	p := restPose{names: names, values: make([]float64, len(names))}
	for i, n := range names {
		p.values[i] = properties[n].get(t)
	}
	return p
}

func (p restPose) restore(t *Target) {
	for i, n := range p.names {
		properties[n].set(t, p.values[i])
	}
	t.MarkDirty()
}
