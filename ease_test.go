package scrollstage

import (
	"errors"
	"testing"
)

func TestParseEaseEndpoints(t *testing.T) {
	for _, name := range []string{
		"", "none", "linear",
		"power1", "power2.in", "power3.out", "power4.inOut",
		"sine", "expo.in", "circ.inOut", "back.out", "elastic.out", "bounce.in",
	} {
		fn, err := ParseEase(name)
		if err != nil {
			t.Errorf("ParseEase(%q): %v", name, err)
			continue
		}
		if got := fn(0); got != 0 {
			t.Errorf("%q(0) = %v, want 0", name, got)
		}
		if got := fn(1); got != 1 {
			t.Errorf("%q(1) = %v, want 1", name, got)
		}
		if got := fn(-1); got != 0 {
			t.Errorf("%q(-1) = %v, want 0 (clamped)", name, got)
		}
	}
}

func TestParseEaseShapes(t *testing.T) {
	out, _ := ParseEase("power3.out")
	in, _ := ParseEase("power3.in")
	lin, _ := ParseEase("none")
	if !(out(0.5) > lin(0.5) && lin(0.5) > in(0.5)) {
		t.Errorf("expected out(0.5)=%v > linear=%v > in(0.5)=%v", out(0.5), lin(0.5), in(0.5))
	}
	if lin(0.25) != 0.25 {
		t.Errorf("linear(0.25) = %v", lin(0.25))
	}
	def, _ := ParseEase("")
	p1, _ := ParseEase("power1.out")
	if def(0.3) != p1(0.3) {
		t.Error("default ease should be power1.out")
	}
}

func TestParseEaseUnknown(t *testing.T) {
	for _, name := range []string{"wobble", "power5", "power2.sideways", "steps(4)"} {
		_, err := ParseEase(name)
		var ce *ConfigurationError
		if !errors.As(err, &ce) || ce.Field != "ease" {
			t.Errorf("ParseEase(%q) error = %v, want ease ConfigurationError", name, err)
		}
	}
}
