package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <page|file.yaml>...",
	Short: "Check pages for configuration errors and list their rules",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, ref := range args {
		p, err := loadPage(ref)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", ref, err)
			failed++
			continue
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.SetStyle(table.StyleLight)
		tw.SetTitle("%s (%s)", p.Name, ref)
		tw.AppendHeader(table.Row{"Group", "Rule", "Targets", "Matched", "Mode"})
		for _, g := range p.Groups {
			for _, r := range g.Rules {
				mode := "play"
				if r.Scroll != nil {
					mode = r.Scroll.Mode.String()
				}
				tw.AppendRow(table.Row{g.Name, r.Name, r.Targets, len(p.Root.Query(r.Targets)), mode})
			}
		}
		tw.Render()
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pages invalid", failed, len(args))
	}
	return nil
}
