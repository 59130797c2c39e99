package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Extract *ExtractCommand
	Sources *SourcesCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "historygrab"
	parser.LongDescription = "Export local browser history to one CSV report per browser."
	parser.SubcommandsOptional = true

	cmds := &commands{
		Extract: &ExtractCommand{globals: &globals, version: version},
		Sources: &SourcesCommand{globals: &globals, version: version},
	}

	parser.AddCommand("extract", "Extract browser history (default)", "Read every known browser history store and write one CSV report per browser.", cmds.Extract)
	parser.AddCommand("sources", "List history sources", "List the history sources for this platform and whether each store is present.", cmds.Sources)

	return parser, &globals, cmds
}

// Run is the main entry point for the historygrab CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand, or extract when none is given.
func RunWithArgs(version string, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	args = compatArgs(args)

	for _, arg := range args {
		if arg == "--version" {
			fmt.Printf("historygrab %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, cmds := buildParser(version)

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			fmt.Println(flagsErr.Message)
			return nil
		}
		return err
	}

	if parser.Active == nil {
		return cmds.Extract.Execute(rest)
	}
	return nil
}

// compatArgs rewrites single-dash long flags accepted by earlier releases.
func compatArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "--" {
			copy(out[i:], args[i:])
			break
		}
		switch arg {
		case "-kill":
			arg = "--kill"
		case "-yes":
			arg = "--yes"
		}
		out[i] = arg
	}
	return out
}
