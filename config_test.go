package scrollstage

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const samplePage = `
name: sample
layout:
  name: root
  width: 100vw
  height: 200vh
  children:
    - name: track
      width: 100vw
      height: 100vh
      when:
        - media: "(min-width: 769px)"
          width: 300vw
      children:
        - {name: one, class: panel, width: 100vw, height: 100vh, color: [1, 0, 0]}
        - {name: two, class: panel, y: 100vh, width: 100vw, height: 100vh, color: [0, 1, 0, 0.5],
           when: [{media: "(min-width: 769px)", x: 100vw, y: 0}]}
groups:
  - name: desktop
    when: "(min-width: 769px)"
    rules:
      - name: slide
        targets: .panel
        to: {xPercent: -100}
        span: true
        ease: none
        scroll: {mode: pin-scrub, trigger: "#track", end: "+=2048", scrubLag: 0.5}
  - rules:
      - targets: .panel
        each: true
        from: {opacity: 0, y: 40}
        duration: 0.8
        scroll: {mode: enter-trigger, toggle: replay-both-directions, start: "top 80%"}
`

func TestLoadPage(t *testing.T) {
	p, err := LoadPage([]byte(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "sample" || p.Root.Name != "root" {
		t.Errorf("name=%q root=%q", p.Name, p.Root.Name)
	}
	if diff := cmp.Diff([]string{"one", "two"}, names(p.Root.Query(".panel"))); diff != "" {
		t.Errorf("panels mismatch (-want +got):\n%s", diff)
	}
	if p.Root.Color != (Color{}) {
		t.Errorf("colorless container = %+v, want transparent", p.Root.Color)
	}
	if got := p.Root.QueryOne("#two").Color; got != (Color{0, 1, 0, 0.5}) {
		t.Errorf("rgba color = %+v", got)
	}

	if len(p.Groups) != 2 {
		t.Fatalf("groups = %d", len(p.Groups))
	}
	desktop, always := p.Groups[0], p.Groups[1]
	if desktop.Predicate == nil || desktop.Predicate.Threshold != 769 {
		t.Errorf("desktop predicate = %+v", desktop.Predicate)
	}
	if always.Name != "groups[1]" || always.Predicate != nil {
		t.Errorf("unnamed group = %q, predicate %v", always.Name, always.Predicate)
	}

	slide := desktop.Rules[0]
	want := &AnimationRule{
		Name:       "slide",
		Targets:    ".panel",
		Properties: map[string]Delta{"xPercent": {From: 0, To: -100, Span: true}},
		Ease:       "none",
		Scroll:     &ScrollBinding{Mode: ModePinScrub, Trigger: "#track", End: "+=2048", ScrubLag: 0.5},
	}
	if diff := cmp.Diff(want, slide); diff != "" {
		t.Errorf("slide rule mismatch (-want +got):\n%s", diff)
	}

	reveal := always.Rules[0]
	if diff := cmp.Diff(map[string]Delta{
		"opacity": {From: 0, To: 1},
		"y":       {From: 40, To: 0},
	}, reveal.Properties); diff != "" {
		t.Errorf("natural to-values mismatch (-want +got):\n%s", diff)
	}
	if !reveal.Each || reveal.Scroll.Toggle != ToggleReplayBothDirections {
		t.Errorf("reveal rule = %+v", reveal)
	}
}

func TestPageLayoutOverrides(t *testing.T) {
	p, err := LoadPage([]byte(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	track := p.Root.QueryOne("#track")
	two := p.Root.QueryOne("#two")

	p.Layout(Size{Width: 1024, Height: 768})
	if track.Layout != (Rect{Width: 3072, Height: 768}) {
		t.Errorf("desktop track = %+v", track.Layout)
	}
	if two.Layout != (Rect{X: 1024, Width: 1024, Height: 768}) {
		t.Errorf("desktop panel = %+v", two.Layout)
	}

	p.Layout(Size{Width: 400, Height: 800})
	if track.Layout != (Rect{Width: 400, Height: 800}) {
		t.Errorf("mobile track = %+v", track.Layout)
	}
	if two.Layout != (Rect{Y: 800, Width: 400, Height: 800}) {
		t.Errorf("mobile panel = %+v", two.Layout)
	}
	if !two.TakeDirty() {
		t.Error("relayout should dirty moved targets")
	}
	p.Layout(Size{Width: 400, Height: 800})
	if two.TakeDirty() {
		t.Error("same size should not dirty targets")
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"120", Length{Value: 120}},
		{"120px", Length{Value: 120}},
		{"100vw", Length{Value: 100, Unit: "vw"}},
		{" 50vh ", Length{Value: 50, Unit: "vh"}},
		{"-25vw", Length{Value: -25, Unit: "vw"}},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLength(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "wide", "10em", "vw"} {
		if _, err := ParseLength(bad); err == nil {
			t.Errorf("ParseLength(%q): expected error", bad)
		}
	}
	if got := (Length{Value: 50, Unit: "vh"}).Resolve(Size{Width: 10, Height: 600}); got != 300 {
		t.Errorf("Resolve = %v", got)
	}
}

func TestLoadPageErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"yaml", "layout: [", "parse page"},
		{"length", "layout: {name: r, width: wide}", "length"},
		{"color", "layout: {name: r, color: [1, 2]}", "color"},
		{"media", "layout: {name: r, when: [{media: tall}]}", "configuration"},
		{"predicate", "layout: {name: r}\ngroups: [{when: \"(min-width: x)\", rules: []}]", "min-width"},
		{"mode", "layout: {name: r}\ngroups: [{rules: [{targets: .a, to: {x: 1}, scroll: {mode: sideways}}]}]", "mode"},
		{"toggle", "layout: {name: r}\ngroups: [{rules: [{targets: .a, scroll: {mode: enter-trigger, toggle: twice}}]}]", "toggle"},
		{"property", "layout: {name: r}\ngroups: [{rules: [{targets: .a, to: {wobble: 1}}]}]", "wobble"},
		{"ease", "layout: {name: r}\ngroups: [{rules: [{targets: .a, to: {x: 1}, ease: bouncy}]}]", "ease"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPage([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadPageConfigurationErrorUnwraps(t *testing.T) {
	_, err := LoadPage([]byte("layout: {name: r}\ngroups: [{name: g, rules: [{name: bad, targets: \"\"}]}]"))
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want wrapped ConfigurationError", err)
	}
	if ce.Rule != "bad" || ce.Field != "targets" {
		t.Errorf("ConfigurationError = %+v", ce)
	}
}

func TestLoadedPageMounts(t *testing.T) {
	p, err := LoadPage([]byte(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(1024, 768)
	p.Layout(h.vp.Size())
	teardown, err := h.engine.Mount(p.Root, p.Groups)
	if err != nil {
		t.Fatal(err)
	}
	c := h.engine.Mounts()[0]
	if !c.IsActive(p.Groups[0]) || !c.IsActive(p.Groups[1]) {
		t.Error("both groups should be active on desktop")
	}
	teardown()
	if h.engine.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d", h.engine.ListenerCount())
	}
}
