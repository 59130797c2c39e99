package cli

import (
	"github.com/runnerr0/historygrab/internal/report"
	"github.com/runnerr0/historygrab/internal/source"
)

// Execute implements the go-flags Commander interface for SourcesCommand.
func (c *SourcesCommand) Execute(args []string) error {
	return c.executeWith(defaultDeps())
}

// executeWith lists sources against the given collaborators (for testing).
func (c *SourcesCommand) executeWith(d deps) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	descs, err := sourcesFor(d.platform, cfg, c.globals.Browser)
	if err != nil {
		return err
	}

	rows := make([]report.SourceRow, 0, len(descs))
	for _, desc := range descs {
		row := report.SourceRow{ID: desc.ID, Browser: desc.Browser}
		switch desc.Kind {
		case source.KindRegistry:
			row.Location = `HKCU\` + desc.RegistryKey
			urls, err := d.registry.TypedURLs(desc.RegistryKey)
			row.Present = err == nil && len(urls) > 0
		default:
			row.Location = desc.Locate.Describe(d.env)
			paths, err := desc.Locate.Locate(d.env)
			row.Present = err == nil && len(paths) > 0
		}
		rows = append(rows, row)
	}

	return report.Sources(d.stdout, rows)
}
