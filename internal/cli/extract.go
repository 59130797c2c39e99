package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/runnerr0/historygrab/internal/config"
	"github.com/runnerr0/historygrab/internal/export"
	"github.com/runnerr0/historygrab/internal/extract"
	"github.com/runnerr0/historygrab/internal/report"
	"github.com/runnerr0/historygrab/internal/source"
)

// ErrSourcesFailed is returned when at least one source was locked or failed.
var ErrSourcesFailed = errors.New("some browser histories could not be extracted")

// Execute implements the go-flags Commander interface for ExtractCommand.
func (c *ExtractCommand) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.executeWith(ctx, defaultDeps())
}

// executeWith runs extraction against the given collaborators (for testing).
func (c *ExtractCommand) executeWith(ctx context.Context, d deps) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	descs, err := sourcesFor(d.platform, cfg, c.globals.Browser)
	if err != nil {
		return err
	}

	logger := newLogger(d.stderr, cfg.Logging.Level)
	rep := report.New(logger)
	logger.Debug("starting extraction", "version", c.version, "platform", string(d.platform), "sources", len(descs), "output_dir", cfg.Output.Dir)

	if c.globals.Kill {
		names := source.ProcessNames(descs)
		ok, reason := true, ""
		if cfg.Kill.Confirm && !c.globals.Yes {
			ok, reason = confirmKill(d, names)
		}
		if ok {
			rep.Terminated(d.terminator.Terminate(ctx, names))
		} else {
			logger.Warn("browsers not terminated, extracting anyway", "reason", reason)
		}
	}

	p := extract.New(extract.Options{
		Env:         d.env,
		OutputDir:   cfg.Output.Dir,
		Driver:      cfg.SQLite.Driver,
		FlagInvalid: cfg.Timestamps.OnInvalid == config.OnInvalidFlag,
		Filter:      extract.NewDomainFilter(cfg.Denylist()),
		Registry:    d.registry,
		CreateSink: func(path string, header []string) (extract.Sink, error) {
			return export.Create(path, header, loc)
		},
		Reporter: rep,
	})

	results := p.Run(ctx, descs)
	if err := report.Summary(d.stdout, results); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("extraction interrupted: %w", err)
	}
	if extract.AnyFailed(results) {
		return ErrSourcesFailed
	}
	return nil
}

// confirmKill asks before terminating browsers. It reports whether to go
// ahead and, if not, why. Without a terminal there is nobody to ask.
func confirmKill(d deps, names []string) (bool, string) {
	if !d.isTerminal() {
		return false, "no terminal to confirm on: pass --yes or set kill.confirm: false"
	}

	fmt.Fprintln(d.stdout, "⚠ WARNING: This will terminate the following browsers:")
	for _, n := range names {
		fmt.Fprintf(d.stdout, "  - %s\n", n)
	}
	fmt.Fprintln(d.stdout)
	fmt.Fprintln(d.stdout, "Unsaved work in those browsers may be lost.")
	fmt.Fprint(d.stdout, "Continue? [y/N]: ")

	scanner := bufio.NewScanner(d.stdin)
	if !scanner.Scan() {
		return false, "no input received"
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true, ""
	default:
		return false, "declined at prompt"
	}
}
