package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollstage"
)

var replayFlags struct {
	script    string
	width     float64
	height    float64
	fps       int
	maxFrames int
	debug     bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <page|file.yaml>",
	Short: "Replay a scripted scroll session headlessly and print timeline snapshots",
	Long: `Replay mounts a page on an in-memory viewport, feeds it the scroll and
resize steps of a JSON script one frame at a time, and prints the state of
every live timeline at each "snapshot" step.

	{"steps": [
		{"action": "scrollTo", "from": 0, "to": 1500, "frames": 30},
		{"action": "wait", "frames": 30},
		{"action": "snapshot", "label": "settled"}
	]}`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVar(&replayFlags.script, "script", "", "JSON test script (required)")
	f.Float64Var(&replayFlags.width, "width", 1024, "Initial viewport width in pixels")
	f.Float64Var(&replayFlags.height, "height", 768, "Initial viewport height in pixels")
	f.IntVar(&replayFlags.fps, "fps", 60, "Simulated frames per second")
	f.IntVar(&replayFlags.maxFrames, "max-frames", 36000, "Stop after this many frames")
	f.BoolVar(&replayFlags.debug, "debug", false, "Log per-frame engine stats to stderr")

	_ = replayCmd.MarkFlagRequired("script")
}

// pageViewport re-lays the page out before the engine sees a new size, the
// way a browser reflows before firing resize.
type pageViewport struct {
	*scrollstage.ManualViewport
	page *scrollstage.Page
}

func (v *pageViewport) SetSize(width, height float64) {
	v.page.Layout(scrollstage.Size{Width: width, Height: height})
	v.ManualViewport.SetSize(width, height)
}

type snapshotRow struct {
	label string
	frame int
	state scrollstage.TimelineState
}

func runReplay(cmd *cobra.Command, args []string) error {
	page, err := loadPage(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(replayFlags.script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := scrollstage.LoadTestScript(data)
	if err != nil {
		return err
	}
	if replayFlags.fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", replayFlags.fps)
	}

	rows, frames, err := replay(page, runner, cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s: %d frames", page.Name, frames)
	tw.AppendHeader(table.Row{"Snapshot", "Frame", "Group", "Rule", "Targets", "Mode", "Progress", "Playing", "Pinned"})
	for _, r := range rows {
		st := r.state
		targets := fmt.Sprint(len(st.Targets))
		if len(st.Targets) == 1 {
			targets = st.Targets[0]
		}
		tw.AppendRow(table.Row{r.label, r.frame, st.Group, st.Rule, targets, st.Mode,
			fmt.Sprintf("%.3f", st.Progress), st.Playing, st.Pinned})
	}
	tw.Render()
	if !runner.Done() {
		return fmt.Errorf("script did not finish within %d frames", replayFlags.maxFrames)
	}
	return nil
}

// replay drives one headless session and returns every snapshot taken.
func replay(page *scrollstage.Page, runner *scrollstage.TestRunner, cmd *cobra.Command) ([]snapshotRow, int, error) {
	size := scrollstage.Size{Width: replayFlags.width, Height: replayFlags.height}
	page.Layout(size)
	vp := &pageViewport{ManualViewport: scrollstage.NewManualViewport(size.Width, size.Height), page: page}
	scroll := scrollstage.NewManualScroll()
	engine := scrollstage.NewEngine(vp, scroll, scrollstage.Config{
		Logger: log.New(cmd.ErrOrStderr(), "", 0),
	})
	engine.SetDebugMode(replayFlags.debug)

	var rows []snapshotRow
	runner.OnSnapshot = func(label string, frame int, states []scrollstage.TimelineState) {
		for _, st := range states {
			rows = append(rows, snapshotRow{label: label, frame: frame, state: st})
		}
	}
	engine.SetTestRunner(runner)

	teardown, err := engine.Mount(page.Root, page.Groups)
	if err != nil {
		return nil, 0, err
	}
	defer teardown()

	bound := func() {
		limit := 1.0
		for _, m := range engine.Mounts() {
			limit = max(limit, m.ScrollLimit(vp.Size().Height))
		}
		scroll.SetMax(limit)
	}
	bound()

	dt := 1 / float64(replayFlags.fps)
	frames := 0
	for !runner.Done() && frames < replayFlags.maxFrames {
		engine.Update(dt)
		bound()
		frames++
	}
	return rows, frames, nil
}
