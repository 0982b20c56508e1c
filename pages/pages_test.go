package pages

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/phanxgames/scrollstage"
)

func TestList(t *testing.T) {
	if diff := cmp.Diff([]string{"landing", "process"}, List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("nope"); err == nil {
		t.Fatal("expected error for unknown page")
	}
}

func TestEveryPageMounts(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			p, err := Load(name)
			if err != nil {
				t.Fatal(err)
			}
			for _, size := range []scrollstage.Size{{Width: 1440, Height: 900}, {Width: 390, Height: 844}} {
				p.Layout(size)
				e := scrollstage.NewEngine(scrollstage.NewManualViewport(size.Width, size.Height),
					scrollstage.NewManualScroll(), scrollstage.Config{})
				teardown, err := e.Mount(p.Root, p.Groups)
				if err != nil {
					t.Fatalf("%v: mount: %v", size, err)
				}
				if len(e.Snapshot()) == 0 {
					t.Errorf("%v: no timelines active", size)
				}
				teardown()
				if n := e.ListenerCount(); n != 0 {
					t.Errorf("%v: %d listeners after teardown", size, n)
				}
			}
		})
	}
}

func TestLandingContexts(t *testing.T) {
	p, err := Load("landing")
	if err != nil {
		t.Fatal(err)
	}
	desktop, mobile := p.Groups[0], p.Groups[1]

	p.Layout(scrollstage.Size{Width: 1024, Height: 768})
	vp := scrollstage.NewManualViewport(1024, 768)
	e := scrollstage.NewEngine(vp, scrollstage.NewManualScroll(), scrollstage.Config{})
	teardown, err := e.Mount(p.Root, p.Groups)
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	c := e.Mounts()[0]
	if !c.IsActive(desktop) || c.IsActive(mobile) {
		t.Fatalf("at 1024px: desktop=%v mobile=%v", c.IsActive(desktop), c.IsActive(mobile))
	}
	track := p.Root.QueryOne("#track")
	if got := track.DocumentRect().Width; got != 3072 {
		t.Errorf("track width = %v, want 3072", got)
	}
	b := c.Handles()[0].Bindings()[0]
	if got, want := b.Geometry(), (scrollstage.Geometry{Start: 0, End: 2048}); got != want {
		t.Errorf("geometry = %+v, want %+v", got, want)
	}
	if b.Steps() != 3 {
		t.Errorf("steps = %d, want 3", b.Steps())
	}

	p.Layout(scrollstage.Size{Width: 600, Height: 800})
	vp.SetSize(600, 800)
	e.Update(1.0 / 60)
	if c.IsActive(desktop) || !c.IsActive(mobile) {
		t.Fatalf("at 600px: desktop=%v mobile=%v", c.IsActive(desktop), c.IsActive(mobile))
	}
	if got := len(c.Handles()[0].Timelines()); got != 3 {
		t.Errorf("mobile timelines = %d, want one per panel", got)
	}
	for _, panel := range p.Root.Query(".panel") {
		if panel.XPercent != 0 {
			t.Errorf("%s xPercent = %v after desktop revert", panel.Name, panel.XPercent)
		}
	}
}
