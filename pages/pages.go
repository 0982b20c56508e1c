// Package pages bundles the page definitions shipped with scrollstage: a
// landing page whose panels scroll horizontally inside a pinned track on
// wide viewports and fade in one by one on narrow ones, and a process page
// of staggered hero text and reveal-on-enter sections.
package pages

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/phanxgames/scrollstage"
)

//go:embed *.yaml
var files embed.FS

// List returns the names of the bundled pages, sorted.
func List() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(fmt.Sprintf("read embedded pages: %v", err))
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// Source returns the raw YAML of a bundled page.
func Source(name string) ([]byte, error) {
	data, err := files.ReadFile(path.Clean(name) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("page %q not found (have %s)", name, strings.Join(List(), ", "))
	}
	return data, nil
}

// Load parses a bundled page. Each call returns a fresh element tree, so a
// page can be mounted more than once.
func Load(name string) (*scrollstage.Page, error) {
	data, err := Source(name)
	if err != nil {
		return nil, err
	}
	p, err := scrollstage.LoadPage(data)
	if err != nil {
		return nil, fmt.Errorf("load page %q: %w", name, err)
	}
	return p, nil
}
