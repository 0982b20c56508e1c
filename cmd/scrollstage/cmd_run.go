package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollstage"
)

var runFlags struct {
	width  int
	height int
	hud    bool
	debug  bool
}

var runCmd = &cobra.Command{
	Use:   "run <page|file.yaml>",
	Short: "Open a page in a resizable window",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.width, "width", 1024, "Initial window width")
	f.IntVar(&runFlags.height, "height", 768, "Initial window height")
	f.BoolVar(&runFlags.hud, "hud", true, "Show the frame rate and activation overlay")
	f.BoolVar(&runFlags.debug, "debug", false, "Log per-frame engine stats to stderr")
}

func runRun(_ *cobra.Command, args []string) error {
	page, err := loadPage(args[0])
	if err != nil {
		return err
	}
	return scrollstage.Run(page.Root, page.Groups, scrollstage.RunConfig{
		Title:      "Scrollstage - " + page.Name,
		Width:      runFlags.width,
		Height:     runFlags.height,
		Background: scrollstage.Color{R: 0.92, G: 0.91, B: 0.89, A: 1},
		ShowHUD:    runFlags.hud,
		Debug:      runFlags.debug,
		Layout:     page.Layout,
	})
}
