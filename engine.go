package scrollstage

import (
	"log"
	"time"
)

// Config holds the engine's tunables. Zero fields fall back to the values of
// DefaultConfig.
type Config struct {
	// SettleWindow is how long scrolling must pause, in seconds, before a
	// snap-step binding snaps.
	SettleWindow float64
	// SnapDuration is the length of the animation to a snap stop, in seconds.
	SnapDuration float64
	// Hysteresis is the distance in pixels an enter-trigger must travel back
	// past its threshold before a backward crossing counts.
	Hysteresis float64
	// Logger receives runtime warnings. nil uses log.Default().
	Logger *log.Logger
}

// DefaultConfig returns the default tunables: 120 ms settle window, 300 ms
// snap animation, 2 px hysteresis.
func DefaultConfig() Config {
	return Config{
		SettleWindow: 0.12,
		SnapDuration: 0.3,
		Hysteresis:   2,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SettleWindow <= 0 {
		c.SettleWindow = d.SettleWindow
	}
	if c.SnapDuration <= 0 {
		c.SnapDuration = d.SnapDuration
	}
	if c.Hysteresis <= 0 {
		c.Hysteresis = d.Hysteresis
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

// Engine is a caller-owned animation engine. It owns the listener hub that
// every binding subscribes to, coalesces scroll and resize notifications
// into one recomputation per frame, and advances wall-clock tweens. Engines
// share nothing, so independent pages (or tests) never interfere.
//
// The engine is single-threaded: sources must notify it, and Update must be
// called, from one goroutine.
type Engine struct {
	viewport Viewport
	scroll   ScrollSource
	cfg      Config
	now      float64

	scrollHub listenerList[float64]
	resizeHub listenerList[Size]
	frameHub  listenerList[float64]

	pendingScroll bool
	pendingResize bool

	mounts      []*Coordinator
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	debug bool
	stats debugStats
}

// NewEngine creates an engine reading from the given viewport and scroll
// source.
func NewEngine(viewport Viewport, scroll ScrollSource, cfg Config) *Engine {
	return &Engine{
		viewport: viewport,
		scroll:   scroll,
		cfg:      cfg.withDefaults(),
	}
}

// Viewport returns the engine's viewport service.
func (e *Engine) Viewport() Viewport { return e.viewport }

// Scroll returns the engine's scroll source.
func (e *Engine) Scroll() ScrollSource { return e.scroll }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Now returns the engine clock: the sum of every dt passed to Update.
func (e *Engine) Now() float64 { return e.now }

// Update runs one frame: drains at most one injected event, applies the
// frame's coalesced resize (context re-evaluation, geometry refresh), then
// one scroll recomputation, then advances wall-clock tweens by dt seconds.
func (e *Engine) Update(dt float64) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjected()
	e.now += dt

	if e.pendingResize {
		e.pendingResize = false
		e.pendingScroll = true
		e.resizeHub.emit(e.viewport.Size())
	}
	if e.pendingScroll {
		e.pendingScroll = false
		e.scrollHub.emit(e.scroll.Offset())
	}
	e.frameHub.emit(dt)

	if e.debug {
		e.stats.frameTime = time.Since(t0)
		e.debugLog()
	}
}

// onScroll registers a coalesced scroll listener, called at most once per
// frame with the latest offset.
func (e *Engine) onScroll(fn func(float64)) *Subscription {
	return e.scrollHub.add(fn)
}

// onResize registers a coalesced resize listener, called at most once per
// frame with the latest size.
func (e *Engine) onResize(fn func(Size)) *Subscription {
	return e.resizeHub.add(fn)
}

// onFrame registers a per-frame tick listener receiving dt.
func (e *Engine) onFrame(fn func(float64)) *Subscription {
	return e.frameHub.add(fn)
}

// sourceScrolled and sourceResized are the raw source callbacks. They only
// record that work is pending; Update does the work.
func (e *Engine) sourceScrolled(float64) { e.pendingScroll = true }
func (e *Engine) sourceResized(Size)     { e.pendingResize = true }

// ListenerCount returns the number of scroll, resize and frame listeners
// currently attached to the engine.
func (e *Engine) ListenerCount() int {
	return e.scrollHub.len() + e.resizeHub.len() + e.frameHub.len()
}

// Mounts returns the currently mounted pages. The slice MUST NOT be mutated.
func (e *Engine) Mounts() []*Coordinator {
	return e.mounts
}

func (e *Engine) removeMount(c *Coordinator) {
	for i, m := range e.mounts {
		if m == c {
			e.mounts = append(e.mounts[:i], e.mounts[i+1:]...)
			return
		}
	}
}

func (e *Engine) warnf(format string, args ...any) {
	e.cfg.Logger.Printf("scrollstage: "+format, args...)
}
