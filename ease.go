package scrollstage

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps linear progress in [0, 1] to eased progress. Endpoints are
// pinned: 0 maps to 0 and 1 maps to 1 regardless of the curve.
type Easing func(p float64) float64

// EaseLinear is the identity easing ("none" in rule files).
func EaseLinear(p float64) float64 { return clamp01(p) }

// FromTween adapts a gween easing function (t, b, c, d) to an Easing.
func FromTween(fn ease.TweenFunc) Easing {
	return func(p float64) float64 {
		switch {
		case p <= 0:
			return 0
		case p >= 1:
			return 1
		}
		return float64(fn(float32(p), 0, 1, 1))
	}
}

type easeFamily struct {
	in, out, inOut ease.TweenFunc
}

var easeFamilies = map[string]easeFamily{
	"power1":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// ParseEase resolves an easing identifier. Accepted forms are "none",
// "linear", or a family ("power1".."power4", "quad", "cubic", "quart",
// "quint", "sine", "expo", "circ", "back", "elastic", "bounce") with an
// optional ".in", ".out" or ".inOut" suffix. A bare family eases out.
// The empty string is "power1.out".
func ParseEase(name string) (Easing, error) {
	if name == "" {
		name = "power1.out"
	}
	if name == "none" || name == "linear" {
		return EaseLinear, nil
	}
	family, variant, _ := strings.Cut(name, ".")
	fam, ok := easeFamilies[family]
	if !ok {
		return nil, &ConfigurationError{Field: "ease", Value: name, Reason: "unknown easing"}
	}
	switch variant {
	case "", "out":
		return FromTween(fam.out), nil
	case "in":
		return FromTween(fam.in), nil
	case "inOut":
		return FromTween(fam.inOut), nil
	}
	return nil, &ConfigurationError{Field: "ease", Value: name, Reason: "unknown easing variant"}
}
