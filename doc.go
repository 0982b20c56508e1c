// Package scrollstage is a responsive, scroll-driven animation engine.
//
// A page is an element tree of [Target] values plus a list of
// [ContextGroup] values. Each group is gated by a viewport predicate such as
// "(min-width: 769px)" and holds [AnimationRule] values describing which
// targets to animate, which properties, and how the animation is driven:
// over wall-clock time, or by scroll position through a [ScrollBinding].
//
// # Quick start
//
// The simplest way to see a page is [Run], which opens a window, wires
// mouse, touch and keyboard scrolling, and draws every target as a box:
//
//	page, _ := scrollstage.LoadPage(data)
//	scrollstage.Run(page.Root, page.Groups, scrollstage.RunConfig{
//		Title: "Landing", Width: 1024, Height: 768, Layout: page.Layout,
//	})
//
// For full control, create an [Engine] over your own [Viewport] and
// [ScrollSource], mount the page, and call [Engine.Update] once per frame:
//
//	vp := scrollstage.NewManualViewport(1024, 768)
//	scroll := scrollstage.NewManualScroll()
//	engine := scrollstage.NewEngine(vp, scroll, scrollstage.Config{})
//	teardown, err := engine.Mount(page.Root, page.Groups)
//	defer teardown()
//
//	for {
//		scroll.SetOffset(readOffset())
//		engine.Update(dt)
//	}
//
// # Frames
//
// Sources only mark work as pending. [Engine.Update] applies at most one
// resize and one scroll recomputation per frame using the latest values,
// then advances wall-clock tweens. Everything runs on the caller's
// goroutine.
//
// # Contexts
//
// A [Coordinator] keeps exactly the matching groups active. When any
// predicate flips, every active group is deactivated (timelines reverted to
// their starting pose, bindings released) and every matching group is
// activated again from scratch. Groups without a predicate are always
// active.
//
// # Scroll modes
//
// [ModePinScrub] pins the trigger and maps scroll distance to progress.
// [ModeSnapStep] scrubs the same way, then settles on the nearest of N
// evenly spaced stops once scrolling pauses. [ModeEnterTrigger] plays the
// timeline when the trigger crosses a threshold line, governed by a
// [TogglePolicy].
//
// # Errors
//
// Malformed rules are reported as [*ConfigurationError] before anything is
// attached. Misuse that would leak listeners, such as unbinding twice or
// tearing a page down twice, panics with a [*ProgrammingError]. Rules whose
// targets are missing from the tree are skipped with a logged warning.
//
// Tweens are driven by [gween]; the window runner uses [Ebitengine].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package scrollstage
