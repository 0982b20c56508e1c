package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollstage/pages"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the bundled pages",
	Args:  cobra.NoArgs,
	RunE:  runPages,
}

func runPages(cmd *cobra.Command, _ []string) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Page", "Groups", "Rules", "Contexts"})

	for _, name := range pages.List() {
		p, err := pages.Load(name)
		if err != nil {
			return err
		}
		rules := 0
		var contexts []string
		for _, g := range p.Groups {
			rules += len(g.Rules)
			if g.Predicate != nil {
				contexts = append(contexts, g.Predicate.String())
			} else {
				contexts = append(contexts, "always")
			}
		}
		tw.AppendRow(table.Row{name, len(p.Groups), rules, strings.Join(contexts, ", ")})
	}
	tw.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "Open one with 'scrollstage run <page>'.\n")
	return nil
}
