package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/runnerr0/historygrab/internal/config"
	"github.com/runnerr0/historygrab/internal/procs"
	"github.com/runnerr0/historygrab/internal/registry"
	"github.com/runnerr0/historygrab/internal/report"
	"github.com/runnerr0/historygrab/internal/source"
)

// deps are the process-level collaborators a command runs against.
// Tests replace them to run without a real home directory, registry,
// terminal or browser processes.
type deps struct {
	platform   source.Platform
	env        source.Env
	registry   registry.Reader
	terminator procs.Terminator
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
}

func defaultDeps() deps {
	return deps{
		platform:   source.Current(),
		env:        source.EnvFromOS(),
		registry:   registry.New(),
		terminator: procs.New(),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// loadConfig loads --config when given, otherwise the default config path,
// then applies flag overrides.
func loadConfig(g *GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadOrDefault()
	}
	if err != nil {
		return nil, err
	}

	if g.OutputDir != "" {
		cfg.Output.Dir = g.OutputDir
	}
	if g.UTC {
		cfg.Output.Timezone = "utc"
	}
	if g.Verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger returns the run logger. Every record carries the run id.
func newLogger(w io.Writer, level string) *slog.Logger {
	return report.NewLogger(w, level).With("run_id", uuid.NewString())
}

// sourcesFor returns the descriptors for the platform after config path
// overrides and browser selection.
func sourcesFor(p source.Platform, cfg *config.Config, selected []string) ([]source.Descriptor, error) {
	descs := source.WithOverrides(source.ForPlatform(p), cfg.Browsers.Paths)
	if len(selected) == 0 {
		selected = cfg.Browsers.Enabled
	}
	return source.Select(descs, selected)
}
