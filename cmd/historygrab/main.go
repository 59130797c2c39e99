package main

import (
	"errors"
	"fmt"
	"os"

	_ "time/tzdata"

	"github.com/runnerr0/historygrab/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		if !errors.Is(err, cli.ErrSourcesFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
