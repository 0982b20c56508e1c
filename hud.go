package scrollstage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hud is the on-screen overlay listing frame rate, scroll position and the
// live activation set. It redraws its text about every half second.
type hud struct {
	img        *ebiten.Image
	lastUpdate float64
}

// 260x96 fits six lines of the debug font.
const hudWidth, hudHeight = 260, 96

func (h *hud) update(e *Engine, dt float64) {
	h.lastUpdate += dt
	if h.img != nil && h.lastUpdate < 0.5 {
		return
	}
	h.lastUpdate = 0
	if h.img == nil {
		h.img = ebiten.NewImage(hudWidth, hudHeight)
	}

	groups, timelines, pinned := 0, 0, 0
	for _, m := range e.mounts {
		groups += len(m.handles)
	}
	for _, st := range e.Snapshot() {
		timelines++
		if st.Pinned {
			pinned++
		}
	}
	size := e.viewport.Size()

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 160})
	ebitenutil.DebugPrint(h.img, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\nviewport: %.0fx%.0f\nscroll: %.0f\ngroups: %d\ntimelines: %d (pinned %d)\nlisteners: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		size.Width, size.Height,
		e.scroll.Offset(),
		groups, timelines, pinned, e.ListenerCount()))
}

func (h *hud) draw(screen *ebiten.Image) {
	if h.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &op)
}
