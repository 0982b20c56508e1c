// scrollstage is the command-line front end: list and validate pages,
// replay scripted scroll sessions headlessly, or open a page in a window.
//
// Usage:
//
//	scrollstage pages
//	scrollstage validate <page|file.yaml>...
//	scrollstage replay <page|file.yaml> --script session.json [--width 1024 --height 768]
//	scrollstage run <page|file.yaml> [--hud] [--debug]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollstage"
	"github.com/phanxgames/scrollstage/pages"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scrollstage",
	Short: "Responsive scroll-driven animation pages",
	Long:  "Scrollstage mounts context-gated animation rules onto a page and drives\nthem from scroll position and viewport size.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadPage resolves a bundled page name or a path to a YAML page file.
func loadPage(ref string) (*scrollstage.Page, error) {
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.ContainsRune(ref, os.PathSeparator) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		return scrollstage.LoadPage(data)
	}
	return pages.Load(ref)
}
